// nolint: wrapcheck
package parquetutils

import (
	"github.com/cockroachdb/errors"
	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/source"
)

// ReaderConcurrency parallel number of file readers.
var ReaderConcurrency int64 = 8

// Make sure BufferFile implements the ParquetFile interface.
var _ source.ParquetFile = (*BufferFile)(nil)

// BufferFile is a parquet file held in memory, e.g. an object downloaded from S3.
type BufferFile struct {
	*parquetbuffer.BufferFile
}

// NewBufferFile wraps s without copying it.
func NewBufferFile(s []byte) *BufferFile {
	return &BufferFile{BufferFile: parquetbuffer.NewBufferFileFromBytesNoAlloc(s)}
}

func (bf *BufferFile) Create(string) (source.ParquetFile, error) {
	return &BufferFile{BufferFile: parquetbuffer.NewBufferFile()}, nil
}

// Open returns an independent reader over the same bytes. The parquet reader opens one per column.
func (bf *BufferFile) Open(string) (source.ParquetFile, error) {
	return NewBufferFile(bf.Bytes()), nil
}

// ReadAll reads all records from the parquet file.
func ReadAll[T any](sourceFile source.ParquetFile) ([]T, error) {
	r, err := reader.NewParquetReader(sourceFile, new(T), ReaderConcurrency)
	if err != nil {
		return nil, errors.Wrap(err, "can't create parquet reader")
	}
	defer r.ReadStop()

	data := make([]T, r.GetNumRows())
	if err = r.Read(&data); err != nil {
		return nil, errors.Wrap(err, "failed to read parquet data")
	}

	return data, nil
}

// ReadBytes reads all records from an in-memory parquet file.
func ReadBytes[T any](data []byte) ([]T, error) {
	return ReadAll[T](NewBufferFile(data))
}
