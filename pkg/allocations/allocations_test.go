package allocations

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/pkg/merkle"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/writer"
)

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob   = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	carol = common.HexToAddress("0x00000000000000000000000000000000000ca201")
)

func allocation(addr common.Address, amount uint64) merkle.Allocation {
	return merkle.Allocation{Address: addr, Amount: uint256.NewInt(amount)}
}

func TestDecode(t *testing.T) {
	type testCase struct {
		name     string
		data     string
		format   Format
		decimals uint16
		expected []merkle.Allocation
		err      error
	}

	testCases := []testCase{
		{
			name:     "csv with header",
			data:     "address,amount\n" + alice.Hex() + ",100\n" + bob.Hex() + ", 200\n",
			format:   FormatCSV,
			expected: []merkle.Allocation{allocation(alice, 100), allocation(bob, 200)},
		},
		{
			name:     "csv without header",
			data:     alice.Hex() + ",100\n",
			format:   FormatCSV,
			expected: []merkle.Allocation{allocation(alice, 100)},
		},
		{
			name:     "csv with comments and human units",
			data:     "# round 1\n" + alice.Hex() + ",1.5\n",
			format:   FormatCSV,
			decimals: 2,
			expected: []merkle.Allocation{allocation(alice, 150)},
		},
		{
			name:   "csv missing amount",
			data:   alice.Hex() + "\n",
			format: FormatCSV,
			err:    errs.InvalidInput,
		},
		{
			name:   "csv invalid address",
			data:   "0x1234,100\n",
			format: FormatCSV,
			err:    errs.InvalidInput,
		},
		{
			name:     "json string and number amounts",
			data:     `[{"address":"` + alice.Hex() + `","amount":"100"},{"address":"` + bob.Hex() + `","amount":200}]`,
			format:   FormatJSON,
			expected: []merkle.Allocation{allocation(alice, 100), allocation(bob, 200)},
		},
		{
			name:     "json human units",
			data:     `[{"address":"` + alice.Hex() + `","amount":"0.25"}]`,
			format:   FormatJSON,
			decimals: 4,
			expected: []merkle.Allocation{allocation(alice, 2500)},
		},
		{
			name:   "json fractional base units",
			data:   `[{"address":"` + alice.Hex() + `","amount":"0.25"}]`,
			format: FormatJSON,
			err:    errs.InvalidInput,
		},
		{
			name:   "json malformed",
			data:   `{"address":`,
			format: FormatJSON,
			err:    errs.InvalidInput,
		},
		{
			name:   "unknown format",
			data:   "",
			format: Format("xml"),
			err:    errs.Unsupported,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := Decode([]byte(tc.data), tc.format, tc.decimals)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestDecodeParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "allocations.parquet")

	fw, err := local.NewLocalFileWriter(path)
	require.NoError(t, err)
	pw, err := writer.NewParquetWriter(fw, new(record), 1)
	require.NoError(t, err)
	require.NoError(t, pw.Write(record{Address: alice.Hex(), Amount: "100"}))
	require.NoError(t, pw.Write(record{Address: bob.Hex(), Amount: "200"}))
	require.NoError(t, pw.WriteStop())
	require.NoError(t, fw.Close())

	actual, err := NewLoader().Load(context.Background(), path, Options{})
	require.NoError(t, err)
	assert.Equal(t, []merkle.Allocation{allocation(alice, 100), allocation(bob, 200)}, actual)
}

func TestMerge(t *testing.T) {
	t.Run("keeps order", func(t *testing.T) {
		merged, err := Merge(
			[]merkle.Allocation{allocation(alice, 1)},
			[]merkle.Allocation{allocation(bob, 2), allocation(carol, 3)},
		)
		require.NoError(t, err)
		assert.Equal(t, []merkle.Allocation{allocation(alice, 1), allocation(bob, 2), allocation(carol, 3)}, merged)
	})
	t.Run("duplicate address", func(t *testing.T) {
		_, err := Merge(
			[]merkle.Allocation{allocation(alice, 1)},
			[]merkle.Allocation{allocation(alice, 2)},
		)
		require.ErrorIs(t, err, errs.InvalidInput)
	})
}

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	args := m.Called(ctx, uri)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "round1.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(alice.Hex()+",100\n"), 0o600))
	jsonPath := filepath.Join(dir, "round2.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"address":"`+bob.Hex()+`","amount":"200"}]`), 0o600))

	s3 := &mockFetcher{}
	s3.On("Fetch", mock.Anything, "s3://allocations/round3.csv").Return([]byte(carol.Hex()+",300\n"), nil)
	s3.On("Fetch", mock.Anything, "s3://allocations/missing.csv").Return(nil, errs.NotFound)

	loader := NewLoader(WithS3Fetcher(s3), WithConcurrency(2))

	t.Run("merges sources in order", func(t *testing.T) {
		actual, err := loader.LoadAll(context.Background(), []string{csvPath, jsonPath, "s3://allocations/round3.csv"}, Options{})
		require.NoError(t, err)
		assert.Equal(t, []merkle.Allocation{allocation(alice, 100), allocation(bob, 200), allocation(carol, 300)}, actual)
	})
	t.Run("duplicate across sources", func(t *testing.T) {
		_, err := loader.LoadAll(context.Background(), []string{csvPath, csvPath}, Options{})
		require.ErrorIs(t, err, errs.InvalidInput)
	})
	t.Run("failed source", func(t *testing.T) {
		_, err := loader.LoadAll(context.Background(), []string{csvPath, "s3://allocations/missing.csv"}, Options{})
		require.ErrorIs(t, err, errs.NotFound)
	})
	t.Run("missing local file", func(t *testing.T) {
		_, err := loader.LoadAll(context.Background(), []string{filepath.Join(dir, "nope.csv")}, Options{})
		require.ErrorIs(t, err, errs.NotFound)
	})
	t.Run("no sources", func(t *testing.T) {
		_, err := loader.LoadAll(context.Background(), nil, Options{})
		require.ErrorIs(t, err, errs.InvalidInput)
	})
	t.Run("unknown extension", func(t *testing.T) {
		_, err := loader.LoadAll(context.Background(), []string{filepath.Join(dir, "round1.txt")}, Options{})
		require.ErrorIs(t, err, errs.Unsupported)
	})
	t.Run("explicit format", func(t *testing.T) {
		txtPath := filepath.Join(dir, "round4.txt")
		require.NoError(t, os.WriteFile(txtPath, []byte(alice.Hex()+",7\n"), 0o600))
		actual, err := loader.LoadAll(context.Background(), []string{txtPath}, Options{Format: FormatCSV})
		require.NoError(t, err)
		assert.Equal(t, []merkle.Allocation{allocation(alice, 7)}, actual)
	})
}

func TestParseS3URI(t *testing.T) {
	bucket, key, err := parseS3URI("s3://allocations/sales/round1.parquet")
	require.NoError(t, err)
	assert.Equal(t, "allocations", bucket)
	assert.Equal(t, "sales/round1.parquet", key)

	for _, uri := range []string{"s3://allocations", "s3:///key.csv", "https://allocations/key.csv"} {
		_, _, err := parseS3URI(uri)
		assert.ErrorIs(t, err, errs.InvalidInput, uri)
	}
}
