package snapshot

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/go-cmp/cmp"
)

type todo struct {
	Title string
	Items []string
	Done  map[string]bool
}

func TestEncodeDecode(t *testing.T) {
	in := todo{Title: "groceries", Items: []string{"milk", "eggs"}, Done: map[string]bool{"milk": true}}

	data, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := Decode[todo](data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode[todo]([]byte("not zstd")); err == nil {
		t.Error("Decode(garbage) succeeded, want error")
	}
}

// testStore runs the shared Store contract against s.
func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) err = %v, want ErrNotFound", err)
	}
	if err := s.Save(ctx, "a", []byte("one")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, "a", []byte("two")); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}
	got, err := s.Load(ctx, "a")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != "two" {
		t.Errorf("Load = %q, want %q", got, "two")
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	testStore(t, s)
	if s.Saves() != 2 {
		t.Errorf("Saves = %d, want 2", s.Saves())
	}
}

func TestBoltStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.db")
	s, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	testStore(t, s)

	keys, err := s.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if diff := cmp.Diff([]string{"a"}, keys); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.Load(context.Background(), "a")
	if err != nil || string(got) != "two" {
		t.Errorf("Load after reopen = (%q, %v), want (two, nil)", got, err)
	}
}

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestS3Store(t *testing.T) {
	fake := &fakeS3{objects: make(map[string][]byte)}
	s := NewS3Store(fake, "bucket", "snapshots/")
	testStore(t, s)

	if _, ok := fake.objects["bucket/snapshots/a"]; !ok {
		t.Errorf("object key not prefixed: %v", fake.objects)
	}
}
