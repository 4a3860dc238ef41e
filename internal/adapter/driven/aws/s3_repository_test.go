package aws

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/diillson/retail-sales-analytics-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockS3 struct {
	mock.Mock
}

func (m *mockS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.GetObjectOutput)
	return out, args.Error(1)
}

func (m *mockS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.PutObjectOutput)
	return out, args.Error(1)
}

func newTestRepository(client s3API) (*S3RepositoryImpl, *[]string) {
	var profiles []string
	return &S3RepositoryImpl{
		clientCache: make(map[string]s3API),
		newClient: func(ctx context.Context, profile string) (s3API, error) {
			profiles = append(profiles, profile)
			return client, nil
		},
	}, &profiles
}

func TestParseS3URI(t *testing.T) {
	tests := []struct {
		name       string
		uri        string
		allowEmpty bool
		bucket     string
		key        string
		wantErr    bool
	}{
		{name: "object", uri: "s3://retail/raw/sales.csv", bucket: "retail", key: "raw/sales.csv"},
		{name: "prefix allowed", uri: "s3://retail", allowEmpty: true, bucket: "retail"},
		{name: "missing key", uri: "s3://retail/", wantErr: true},
		{name: "missing bucket", uri: "s3:///key", wantErr: true},
		{name: "not s3", uri: "https://retail/key", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, key, err := ParseS3URI(tt.uri, tt.allowEmpty)
			if tt.wantErr {
				assert.ErrorIs(t, err, types.ErrInvalidS3URI)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestOpen(t *testing.T) {
	client := new(mockS3)
	repo, profiles := newTestRepository(client)
	ctx := context.Background()

	matchesObject := mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return *in.Bucket == "retail" && *in.Key == "raw/retail_sales.csv"
	})
	for i := 0; i < 2; i++ {
		client.On("GetObject", ctx, matchesObject).
			Return(&s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader("order_id\n1\n"))}, nil).Once()
	}

	for i := 0; i < 2; i++ {
		body, err := repo.Open(ctx, "analytics", "s3://retail/raw/retail_sales.csv")
		require.NoError(t, err)
		data, err := io.ReadAll(body)
		require.NoError(t, err)
		body.Close()
		assert.Equal(t, "order_id\n1\n", string(data))
	}

	assert.Equal(t, []string{"analytics"}, *profiles, "client should be created once per profile")
	client.AssertExpectations(t)
}

func TestOpen_Error(t *testing.T) {
	client := new(mockS3)
	repo, _ := newTestRepository(client)
	ctx := context.Background()

	client.On("GetObject", ctx, mock.Anything).Return(nil, errors.New("NoSuchKey"))

	_, err := repo.Open(ctx, "", "s3://retail/missing.csv")
	assert.ErrorContains(t, err, "NoSuchKey")
}

func TestUpload(t *testing.T) {
	client := new(mockS3)
	repo, _ := newTestRepository(client)
	ctx := context.Background()

	local := filepath.Join(t.TempDir(), "kpi_summary.md")
	require.NoError(t, os.WriteFile(local, []byte("# KPI Summary\n"), 0644))

	client.On("PutObject", ctx, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return *in.Bucket == "retail" && *in.Key == "out/reports/kpi_summary.md" &&
			*in.ContentType == "text/markdown; charset=utf-8"
	})).Return(&s3.PutObjectOutput{}, nil).Once()

	require.NoError(t, repo.Upload(ctx, "", "s3://retail/out/reports/kpi_summary.md", local))
	client.AssertExpectations(t)
}

func TestUpload_MissingLocalFile(t *testing.T) {
	client := new(mockS3)
	repo, _ := newTestRepository(client)

	err := repo.Upload(context.Background(), "", "s3://retail/out/a.csv", filepath.Join(t.TempDir(), "absent.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything)
}
