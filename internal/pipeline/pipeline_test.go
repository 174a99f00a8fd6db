package pipeline

import (
	"context"
	"testing"
	"time"

	"go-order-pipeline/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	statuses []string
	errors   []string
}

func (r *fakeRecorder) UpdateRunStatus(_, status string) error {
	r.statuses = append(r.statuses, status)
	return nil
}

func (r *fakeRecorder) SaveRunError(_, fileName, errorType, _ string) error {
	r.errors = append(r.errors, fileName+":"+errorType)
	return nil
}

func fixedOptions(rec Recorder) Options {
	return Options{
		Recorder: rec,
		Location: time.UTC,
		Now:      func() time.Time { return time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC) },
	}
}

func batch(t *testing.T) []model.SourceFile {
	naver := csvSource(t, "스마트스토어_발주.csv",
		[]string{"스마트스토어 발주발송관리"},
		naverHeader,
		[]string{"N1", "김철수", "010-1111-2222", "서울", "PHONE 스탠드", "2", "", "", "2024-03-14", "김철수"},
		[]string{"N2", "김철수", "010-1111-2222", "서울", "OH 가드", "1", "문앞", "", "2024-03-14", "김철수"},
	)
	coupang := xlsxSource(t, "DeliveryList(2024-03-14).xlsx",
		coupangHdr,
		[]interface{}{"C2", "이영희", "010-5555-6666", "대전", "충전 케이블", 1, "P-2", "", "2024-03-13", "이영희"},
		[]interface{}{"C1", "최민호", "010-7777-8888", "광주", "차량 번호판", 2, "P-1", "", "2024-03-13", "최민호"},
	)
	eleventh := csvSource(t, "download.csv",
		[]string{"판매자 주문 목록"},
		[]string{"조회기간 2024-03-01 ~ 2024-03-14"},
		eleventhHdr,
		[]string{"E1", "박지성", "010-3333-4444", "부산", "SH 블랙", "1", "", "2024-03-14", "박지성"},
	)
	unknown := csvSource(t, "memo.csv", []string{"메모"}, []string{"내일 발송"})
	return []model.SourceFile{eleventh, coupang, unknown, naver}
}

func TestRunShipments(t *testing.T) {
	rec := &fakeRecorder{}
	run, err := RunShipments(context.Background(), "run-1", batch(t), fixedOptions(rec))
	require.NoError(t, err)

	require.Len(t, run.Files, 4)
	assert.Equal(t, model.Market11st, run.Files[0].Marketplace)
	assert.Equal(t, 2, run.Files[0].SkipRows)
	assert.Equal(t, model.MarketCoupang, run.Files[1].Marketplace)
	assert.NotEmpty(t, run.Files[2].Error)
	assert.Equal(t, model.MarketNaver, run.Files[3].Marketplace)
	assert.Equal(t, 1, run.Files[3].SkipRows)

	require.Len(t, run.Records, 4)
	assert.Equal(t, "김철수", run.Records[0].RecipientName)
	assert.Equal(t, "OH, PH 2개", run.Records[0].ProductSummary)
	assert.Equal(t, "N1", run.Records[0].CustomerOrderID)
	assert.Equal(t, "문앞", run.Records[0].DeliveryMessage)
	// coupang rows order by seller product code
	assert.Equal(t, "최민호", run.Records[1].RecipientName)
	assert.Equal(t, "이영희", run.Records[2].RecipientName)
	assert.Equal(t, "박지성", run.Records[3].RecipientName)
	assert.Equal(t, 4, run.OrderCount())

	require.Len(t, run.Artifacts, 2)
	assert.Equal(t, "0314_09.xlsx", run.Artifacts[0].FileName)
	assert.Equal(t, KindShipment, run.Artifacts[0].Kind)
	assert.Equal(t, "0314_09_쿠팡_원본정렬.xlsx", run.Artifacts[1].FileName)

	sorted := workbookRows(t, run.Artifacts[1].Content)
	assert.Equal(t, "C1", sorted[1][0])
	assert.Equal(t, "C2", sorted[2][0])

	rows := workbookRows(t, run.Artifacts[0].Content)
	assert.Equal(t, ShipmentColumns, rows[0])
	assert.Len(t, rows, 5)

	require.Len(t, run.Preview, 4)
	assert.Equal(t, 1, run.Metrics.FilesUnrecognized)
	assert.Equal(t, 3, run.Metrics.FilesRecognized)
	assert.Equal(t, 5, run.Metrics.OrderLines)
	assert.Equal(t, "completed", rec.statuses[len(rec.statuses)-1])
	assert.Contains(t, rec.errors, "memo.csv:unrecognized_source")
}

func TestRunShipmentsKeepsLongOrderNumbers(t *testing.T) {
	coupang := xlsxSource(t, "DeliveryList(2024-03-15).xlsx",
		coupangHdr,
		[]interface{}{int64(2024031512345678), "이영희", "010-5555-6666", "대전", "충전 케이블", 1, "P-2", "", "2024-03-15", "이영희"},
	)
	run, err := RunShipments(context.Background(), "run-long", []model.SourceFile{coupang}, fixedOptions(&fakeRecorder{}))
	require.NoError(t, err)

	require.Len(t, run.Records, 1)
	assert.Equal(t, "2024031512345678", run.Records[0].CustomerOrderID)

	require.Len(t, run.Artifacts, 2)
	shipment := workbookRows(t, run.Artifacts[0].Content)
	assert.Equal(t, "2024031512345678", shipment[1][0])
	sorted := workbookRows(t, run.Artifacts[1].Content)
	assert.Equal(t, "2024031512345678", sorted[1][0])
}

func TestRunShipmentsDeterministic(t *testing.T) {
	files := batch(t)
	first, err := RunShipments(context.Background(), "a", files, fixedOptions(nil))
	require.NoError(t, err)
	second, err := RunShipments(context.Background(), "b", files, fixedOptions(nil))
	require.NoError(t, err)
	assert.Equal(t, first.Records, second.Records)
	assert.Equal(t, first.Artifacts[0].Content, second.Artifacts[0].Content)
}

func TestRunShipmentsEmptyBatch(t *testing.T) {
	rec := &fakeRecorder{}
	files := []model.SourceFile{
		csvSource(t, "a.csv", []string{"x"}, []string{"1"}),
		{Name: "b.xlsx", Content: []byte("broken")},
	}
	run, err := RunShipments(context.Background(), "empty", files, fixedOptions(rec))
	require.ErrorIs(t, err, ErrEmptyBatch)
	require.NotNil(t, run)
	assert.Empty(t, run.Artifacts)
	assert.Empty(t, run.Records)
	assert.Len(t, run.Files, 2)
	assert.Equal(t, "failed", rec.statuses[len(rec.statuses)-1])
}

func TestRunShipmentsMissingColumnIsPerFile(t *testing.T) {
	broken := csvSource(t, "orders_broken.csv", []string{"주문번호", "수령인"}, []string{"1", "a"})
	files := append(batch(t), broken)
	run, err := RunShipments(context.Background(), "r", files, fixedOptions(nil))
	require.NoError(t, err)
	last := run.Files[len(run.Files)-1]
	assert.Equal(t, model.MarketOwn, last.Marketplace)
	assert.Contains(t, last.Error, "missing required column")
	assert.Equal(t, 1, run.Metrics.FilesFailed)
}

func TestRunShipmentsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunShipments(ctx, "c", batch(t), fixedOptions(nil))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunManagement(t *testing.T) {
	esm := csvSource(t, "신규주문.csv",
		esmHeader,
		[]string{"1001", "가", "010-1", "주소1", "SH", "1", "", "2024-03-14 10:00:00", "가"},
		[]string{"4001", "나", "010-2", "주소2", "OH", "1", "빠른배송", "2024-03-14 11:00:00", "나"},
		[]string{"4001", "나", "010-2", "주소2", "무선 충전기", "2", "", "2024-03-14 11:00:00", "나"},
	)
	cj := csvSource(t, "cj_0314.csv",
		[]string{"고객주문번호", "운송장번호"},
		[]string{"1001", "111"},
		[]string{"4001", "nan"},
	)
	run, err := RunManagement(context.Background(), "m1", []model.SourceFile{esm}, []model.SourceFile{cj}, model.SummaryClassified, fixedOptions(nil))
	require.NoError(t, err)

	require.Len(t, run.Records, 2)
	assert.Equal(t, 1, run.Matched)
	assert.Equal(t, 1, run.Unmatched())

	byOrder := map[string]model.ManagementRecord{}
	for _, r := range run.Records {
		byOrder[r.OrderNumber] = r
	}
	assert.Equal(t, ChannelGmarket, byOrder["1001"].Channel)
	assert.Equal(t, "111", byOrder["1001"].InvoiceNumber)
	assert.Equal(t, ChannelAuction, byOrder["4001"].Channel)
	assert.Equal(t, "OH, 무선 충전기 2개", byOrder["4001"].ProductSummary)
	assert.Equal(t, "2024.03.14", byOrder["4001"].Date)
	assert.Equal(t, "빠른배송", byOrder["4001"].Remark)

	assert.Equal(t, []model.ProductTotal{
		{Label: CategoryOH, Quantity: 1},
		{Label: CategorySH, Quantity: 1},
		{Label: "무선 충전기", Quantity: 2},
	}, run.ProductTotals)

	require.Len(t, run.Artifacts, 2)
	assert.Equal(t, "주문관리_20240314.xlsx", run.Artifacts[0].FileName)
	assert.Equal(t, "상품별집계_20240314.xlsx", run.Artifacts[1].FileName)
	rows := workbookRows(t, run.Artifacts[0].Content)
	assert.Equal(t, ManagementColumns, rows[0])
	require.Len(t, run.CarrierFiles, 1)
	assert.Equal(t, 2, run.CarrierFiles[0].Lines)
}

func TestRunManagementWithoutCarrierColumns(t *testing.T) {
	esm := csvSource(t, "신규주문.csv", esmHeader, []string{"1001", "가", "010-1", "주소1", "SH", "1", "", "", "가"})
	cj := csvSource(t, "cj.csv", []string{"주문", "송장"}, []string{"1001", "111"})
	rec := &fakeRecorder{}
	run, err := RunManagement(context.Background(), "m2", []model.SourceFile{esm}, []model.SourceFile{cj}, model.SummaryRaw, fixedOptions(rec))
	require.NoError(t, err)
	assert.Equal(t, 0, run.Matched)
	assert.Equal(t, model.SummaryRaw, run.Mode)
	assert.Contains(t, rec.errors, ":missing_required_column")
}

func TestRunManagementEmptyBatch(t *testing.T) {
	_, err := RunManagement(context.Background(), "m3", nil, nil, "", fixedOptions(nil))
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

func TestAnnotateCarrier(t *testing.T) {
	delivery := xlsxSource(t, "0314_09.xlsx",
		[]interface{}{"고객주문번호", "받는분성명"},
		[]interface{}{"A100", "김"},
	)
	cj := csvSource(t, "cj.csv", []string{"고객주문번호", "운송장번호"}, []string{"A100", "222"})

	art, matched, reports, err := AnnotateCarrier("ann", delivery, []model.SourceFile{cj}, fixedOptions(nil))
	require.NoError(t, err)
	assert.Equal(t, 1, matched)
	assert.Len(t, reports, 1)
	assert.Equal(t, "0314_09_송장.xlsx", art.FileName)
	assert.Equal(t, KindCarrier, art.Kind)
	rows := workbookRows(t, art.Content)
	assert.Equal(t, "222", rows[1][2])
}
