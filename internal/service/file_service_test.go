package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"testing"

	"tabular-qa-be/internal/config"
	"tabular-qa-be/internal/dto"
	"tabular-qa-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	headers := form.File["file"]
	require.Len(t, headers, 1)
	return headers[0]
}

func newTestFileService(t *testing.T, uow *fakeUow) IFileService {
	t.Helper()
	cfg := config.UploadConfig{
		Dir:           t.TempDir(),
		MaxFileSizeMB: 10,
	}
	return NewFileService(&fakeUowFactory{uow: uow}, cfg, nopLogger{}, nil, nil)
}

func TestUploadCSV(t *testing.T) {
	userId := uuid.New()
	uow := &fakeUow{fileRepo: &fakeFileRepo{}, historyRepo: &fakeHistoryRepo{}}
	svc := newTestFileService(t, uow)

	fh := makeFileHeader(t, "sales.csv", []byte("region,total\nnorth,100\nsouth,200\n"))

	res, err := svc.Upload(context.Background(), userId, fh)
	require.NoError(t, err)
	assert.Equal(t, "sales.csv", res.OriginalFilename)
	assert.Equal(t, "csv", res.FileType)
	assert.Equal(t, 2, res.RowCount)
	assert.Equal(t, 2, res.ColumnCount)
	assert.Equal(t, []string{"region", "total"}, res.Columns)
	assert.NotEqual(t, "sales.csv", res.Filename)

	require.Len(t, uow.fileRepo.files, 1)
	stored := uow.fileRepo.files[0]
	assert.Equal(t, userId, stored.UserId)

	// The bytes really landed on disk under the generated name.
	_, err = os.Stat(stored.FilePath)
	assert.NoError(t, err)
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	uow := &fakeUow{fileRepo: &fakeFileRepo{}, historyRepo: &fakeHistoryRepo{}}
	svc := newTestFileService(t, uow)

	fh := makeFileHeader(t, "notes.txt", []byte("not a table"))

	_, err := svc.Upload(context.Background(), uuid.New(), fh)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Empty(t, uow.fileRepo.files)
}

func TestUploadRejectsOversizeFile(t *testing.T) {
	uow := &fakeUow{fileRepo: &fakeFileRepo{}, historyRepo: &fakeHistoryRepo{}}
	cfg := config.UploadConfig{Dir: t.TempDir(), MaxFileSizeMB: 1}
	svc := NewFileService(&fakeUowFactory{uow: uow}, cfg, nopLogger{}, nil, nil)

	big := bytes.Repeat([]byte("a,b,c\n"), (1<<20)/6+1000)
	fh := makeFileHeader(t, "big.csv", big)

	_, err := svc.Upload(context.Background(), uuid.New(), fh)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Empty(t, uow.fileRepo.files)
}

func TestUploadRejectsUnparseableFile(t *testing.T) {
	uow := &fakeUow{fileRepo: &fakeFileRepo{}, historyRepo: &fakeHistoryRepo{}}
	svc := newTestFileService(t, uow)

	// Right extension, empty body: the parser must reject it and nothing may
	// remain on disk or in the repository.
	fh := makeFileHeader(t, "empty.csv", []byte(""))

	_, err := svc.Upload(context.Background(), uuid.New(), fh)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Empty(t, uow.fileRepo.files)
}

func TestDeleteCascadesHistory(t *testing.T) {
	userId := uuid.New()
	uow := &fakeUow{fileRepo: &fakeFileRepo{}, historyRepo: &fakeHistoryRepo{}}
	svc := newTestFileService(t, uow)

	fh := makeFileHeader(t, "sales.csv", []byte("a,b\n1,2\n"))
	res, err := svc.Upload(context.Background(), userId, fh)
	require.NoError(t, err)

	querySvc := newTestQueryService(uow, failingCache{}, &fakeProvider{answer: "2"})
	_, err = querySvc.Execute(context.Background(), userId, &dto.QueryRequest{FileId: res.Id, Question: "what is b?"})
	require.NoError(t, err)
	require.Len(t, uow.historyRepo.records, 1)

	storedPath := uow.fileRepo.files[0].FilePath

	require.NoError(t, svc.Delete(context.Background(), userId, res.Id))
	assert.Empty(t, uow.historyRepo.records)

	_, statErr := os.Stat(storedPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDeleteForeignFileIsNotFound(t *testing.T) {
	owner := uuid.New()
	uow := &fakeUow{fileRepo: &fakeFileRepo{}, historyRepo: &fakeHistoryRepo{}}
	svc := newTestFileService(t, uow)

	fh := makeFileHeader(t, "sales.csv", []byte("a,b\n1,2\n"))
	res, err := svc.Upload(context.Background(), owner, fh)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), uuid.New(), res.Id)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	require.Len(t, uow.fileRepo.files, 1)
}
