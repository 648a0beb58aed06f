package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"tourvia/internal/domain"
)

type mockPresigner struct {
	calls  int
	signFn func(params *s3.GetObjectInput) (*v4.PresignedHTTPRequest, error)
}

func (m *mockPresigner) PresignGetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	m.calls++
	if m.signFn != nil {
		return m.signFn(params)
	}
	return &v4.PresignedHTTPRequest{
		URL: fmt.Sprintf("https://signed.example.com/%s?sig=%d", *params.Key, m.calls),
	}, nil
}

func newTestStorage(presigner ObjectPresigner) *StorageService {
	return NewStorageService(presigner, nil, StorageConfig{
		Endpoint:      "https://s3.example.com",
		Region:        "us-east-1",
		PrivateBucket: "tourvia-private",
		PublicBucket:  "tourvia-public",
		PublicBaseURL: "https://cdn.example.com/tourvia-public",
	})
}

func TestResolveURLPassthrough(t *testing.T) {
	presigner := &mockPresigner{}
	svc := newTestStorage(presigner)

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{name: "https URL untouched", ref: "https://example.com/pic.jpg", want: "https://example.com/pic.jpg"},
		{name: "http URL untouched", ref: "http://example.com/pic.jpg", want: "http://example.com/pic.jpg"},
		{name: "empty ref yields empty", ref: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ResolveURL(context.Background(), tt.ref)
			if err != nil {
				t.Fatalf("ResolveURL() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveURL() = %q, want %q", got, tt.want)
			}
		})
	}

	if presigner.calls != 0 {
		t.Errorf("presigner called %d times for passthrough refs, want 0", presigner.calls)
	}
}

func TestResolveURLCacheReuse(t *testing.T) {
	presigner := &mockPresigner{}
	svc := newTestStorage(presigner)

	base := time.Now()
	svc.now = func() time.Time { return base }

	first, err := svc.ResolveURL(context.Background(), "images/tour.jpg")
	if err != nil {
		t.Fatalf("first ResolveURL() error = %v", err)
	}

	// Well inside the validity window the same URL comes back with no
	// second signing call.
	svc.now = func() time.Time { return base.Add(30 * time.Minute) }
	second, err := svc.ResolveURL(context.Background(), "images/tour.jpg")
	if err != nil {
		t.Fatalf("second ResolveURL() error = %v", err)
	}
	if first != second {
		t.Errorf("cached URL changed within validity window: %q vs %q", first, second)
	}
	if presigner.calls != 1 {
		t.Errorf("presigner called %d times, want 1", presigner.calls)
	}

	// Within the refresh margin of expiry a fresh URL is signed.
	svc.now = func() time.Time { return base.Add(time.Hour - 10*time.Second) }
	third, err := svc.ResolveURL(context.Background(), "images/tour.jpg")
	if err != nil {
		t.Fatalf("third ResolveURL() error = %v", err)
	}
	if third == first {
		t.Error("URL near expiry was not regenerated")
	}
	if presigner.calls != 2 {
		t.Errorf("presigner called %d times, want 2", presigner.calls)
	}
}

func TestResolveURLPathNormalization(t *testing.T) {
	var seenKeys []string
	presigner := &mockPresigner{
		signFn: func(params *s3.GetObjectInput) (*v4.PresignedHTTPRequest, error) {
			seenKeys = append(seenKeys, *params.Key)
			return &v4.PresignedHTTPRequest{URL: "https://signed.example.com/" + *params.Key}, nil
		},
	}
	svc := newTestStorage(presigner)

	refs := []string{
		"images/tour.jpg",
		"/images/tour.jpg",
		"tourvia-private/images/tour.jpg",
		"/tourvia-private/images/tour.jpg",
	}
	for _, ref := range refs {
		if _, err := svc.ResolveURL(context.Background(), ref); err != nil {
			t.Fatalf("ResolveURL(%q) error = %v", ref, err)
		}
	}

	// All four spellings hit the same cache key, so only one signing call
	// ever reached the backend.
	if len(seenKeys) != 1 {
		t.Fatalf("presigner saw %d keys %v, want 1", len(seenKeys), seenKeys)
	}
	if seenKeys[0] != "images/tour.jpg" {
		t.Errorf("normalized key = %q, want %q", seenKeys[0], "images/tour.jpg")
	}
}

func TestPublicURL(t *testing.T) {
	svc := newTestStorage(&mockPresigner{})

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{name: "empty", ref: "", want: ""},
		{name: "absolute passthrough", ref: "https://cdn.other.com/logo.png", want: "https://cdn.other.com/logo.png"},
		{name: "plain path", ref: "branding/logo.png", want: "https://cdn.example.com/tourvia-public/branding/logo.png"},
		{name: "leading slash", ref: "/branding/logo.png", want: "https://cdn.example.com/tourvia-public/branding/logo.png"},
		{name: "redundant bucket prefix", ref: "tourvia-public/branding/logo.png", want: "https://cdn.example.com/tourvia-public/branding/logo.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.PublicURL(tt.ref); got != tt.want {
				t.Errorf("PublicURL(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

type mockUploader struct {
	headFn   func(params *s3.HeadObjectInput) (*s3.HeadObjectOutput, error)
	putCalls int
	putFn    func(params *s3.PutObjectInput) (*s3.PutObjectOutput, error)
}

func (m *mockUploader) HeadObject(_ context.Context, params *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	return m.headFn(params)
}

func (m *mockUploader) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.putCalls++
	if m.putFn != nil {
		return m.putFn(params)
	}
	return &s3.PutObjectOutput{}, nil
}

func TestUploadOverwriteGuard(t *testing.T) {
	tests := []struct {
		name         string
		overwrite    bool
		headErr      error
		wantErrType  domain.ErrorType
		wantPutCalls int
	}{
		{
			name:         "absent object uploads",
			headErr:      &types.NotFound{},
			wantPutCalls: 1,
		},
		{
			name:        "existing object is a conflict",
			headErr:     nil,
			wantErrType: domain.ConflictError,
		},
		{
			name:        "existence check failure blocks the upload",
			headErr:     errors.New("dial tcp: connection refused"),
			wantErrType: domain.ExternalServiceError,
		},
		{
			name:         "overwrite skips the existence check",
			overwrite:    true,
			headErr:      errors.New("dial tcp: connection refused"),
			wantPutCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploader := &mockUploader{
				headFn: func(_ *s3.HeadObjectInput) (*s3.HeadObjectOutput, error) {
					if tt.overwrite {
						t.Error("HeadObject called with overwrite enabled")
					}
					if tt.headErr != nil {
						return nil, tt.headErr
					}
					return &s3.HeadObjectOutput{}, nil
				},
			}
			svc := NewStorageService(&mockPresigner{}, uploader, StorageConfig{
				PrivateBucket: "tourvia-private",
			})

			key, err := svc.Upload(context.Background(), "images/tour.jpg", strings.NewReader("data"), "image/jpeg", "", tt.overwrite)

			if tt.wantErrType != "" {
				var domainErr *domain.Error
				if !errors.As(err, &domainErr) {
					t.Fatalf("Upload() error = %v, want a typed domain error", err)
				}
				if domainErr.Type != tt.wantErrType {
					t.Errorf("error type = %s, want %s", domainErr.Type, tt.wantErrType)
				}
			} else {
				if err != nil {
					t.Fatalf("Upload() error = %v", err)
				}
				if key != "images/tour.jpg" {
					t.Errorf("Upload() key = %q, want %q", key, "images/tour.jpg")
				}
			}
			if uploader.putCalls != tt.wantPutCalls {
				t.Errorf("PutObject called %d times, want %d", uploader.putCalls, tt.wantPutCalls)
			}
		})
	}
}
