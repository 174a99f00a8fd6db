package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

func TestReadCSV(t *testing.T) {
	content := []byte("\xEF\xBB\xBF주문번호, 수량 ,상품명\n1,2,OH\n\n,,\n3,4\n")
	table, err := NewReader().Read("orders.csv", content, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"주문번호", "수량", "상품명"}, table.Columns)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "OH", table.Cell(0, "상품명"))
	assert.Equal(t, "", table.Cell(1, "상품명"))
	assert.Equal(t, "4", table.Cell(1, "수량"))
}

func TestReadTSV(t *testing.T) {
	content := []byte("주문번호\t상품명\t수량\n1\tOH, PH\t2\n")
	table, err := NewReader().Read("orders.tsv", content, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"주문번호", "상품명", "수량"}, table.Columns)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "OH, PH", table.Cell(0, "상품명"))
	assert.Equal(t, "2", table.Cell(0, "수량"))
}

func TestReadCSVEUCKR(t *testing.T) {
	encoded, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte("주문번호,수취인명\n100,김철수\n"))
	require.NoError(t, err)

	table, err := NewReader().Read("legacy.csv", encoded, 0)
	require.NoError(t, err)
	assert.True(t, table.Has("수취인명"))
	assert.Equal(t, "김철수", table.Cell(0, "수취인명"))
}

func TestReadSkipRows(t *testing.T) {
	content := []byte("배너\n조회기간\n주문번호,주소\n1,서울\n")
	table, err := NewReader().Read("banner.csv", content, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"주문번호", "주소"}, table.Columns)
	assert.Equal(t, 1, table.Len())

	_, err = NewReader().Read("banner.csv", content, 5)
	assert.ErrorIs(t, err, ErrNoHeader)

	_, err = NewReader().Read("banner.csv", content, -1)
	assert.Error(t, err)
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"주문번호", norm.NFD.String("수량")}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"A-1", 3}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	table, err := NewReader().Read("DeliveryList.xlsx", buf.Bytes(), 0)
	require.NoError(t, err)
	assert.True(t, table.Has("수량"), "header is NFC normalized")
	assert.Equal(t, "3", table.Cell(0, "수량"))
	assert.Equal(t, "A-1", table.Cell(0, "주문번호"))
}

func TestReadXLSXLongNumbers(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"주문번호", "연락처"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{int64(2024031512345678), int64(821012345678)}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	table, err := NewReader().Read("DeliveryList.xlsx", buf.Bytes(), 0)
	require.NoError(t, err)
	assert.Equal(t, "2024031512345678", table.Cell(0, "주문번호"))
	assert.Equal(t, "821012345678", table.Cell(0, "연락처"))
}

func TestReadXLSXInvalid(t *testing.T) {
	_, err := NewReader().Read("broken.xlsx", []byte("PK garbage"), 0)
	assert.Error(t, err)
}

func TestNormalizeName(t *testing.T) {
	decomposed := norm.NFD.String("스마트스토어")
	assert.NotEqual(t, "스마트스토어", decomposed)
	assert.Equal(t, "스마트스토어", NormalizeName(decomposed))
}
