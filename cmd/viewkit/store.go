package main

import (
	"context"
	stderrors "errors"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/viewkit/internal/config"
	"github.com/vango-dev/viewkit/internal/errors"
	"github.com/vango-dev/viewkit/pkg/snapshot"
)

// openStore opens the configured snapshot store. The returned close
// function is never nil.
func openStore(cfg config.SnapshotConfig) (snapshot.Store, func() error, error) {
	nop := func() error { return nil }

	switch cfg.Backend {
	case config.BackendMemory:
		return snapshot.NewMemoryStore(), nop, nil

	case config.BackendBolt:
		store, err := snapshot.OpenBolt(cfg.Path)
		if err != nil {
			return nil, nop, errors.New("VK300").
				WithDetail("bolt database " + cfg.Path).
				WithSuggestion("Check that the directory exists and no other process holds the file.").
				Wrap(err)
		}
		return store, store.Close, nil

	case config.BackendS3:
		region := cfg.Region
		if region == "" {
			region = os.Getenv("AWS_REGION")
		}
		client := s3.New(s3.Options{
			Region:      region,
			Credentials: aws.NewCredentialsCache(envCredentials()),
		})
		return snapshot.NewS3Store(client, cfg.Bucket, cfg.Prefix), nop, nil
	}

	return nil, nop, errors.New("VK101").WithDetail("backend " + cfg.Backend)
}

// envCredentials reads static credentials from the standard AWS variables.
func envCredentials() aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		id := os.Getenv("AWS_ACCESS_KEY_ID")
		secret := os.Getenv("AWS_SECRET_ACCESS_KEY")
		if id == "" || secret == "" {
			return aws.Credentials{}, stderrors.New("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
		}
		return aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: secret,
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			Source:          "environment",
		}, nil
	})
}
