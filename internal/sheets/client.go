package sheets

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/dongjinrnd-jpg/Worklog/internal/config"
)

// Client 스프레드시트 접근 어댑터
// 범위 읽기 / 범위 덮어쓰기 / 마지막 행 뒤 추가 / 구조 변경(batchUpdate) 네 가지 연산만 사용한다.
// 읽기는 항상 문자열 행의 직사각형 배열을 돌려준다.
type Client interface {
	Get(ctx context.Context, rng string) ([][]string, error)
	Update(ctx context.Context, rng string, values [][]interface{}) error
	Append(ctx context.Context, rng string, values [][]interface{}) error
	BatchUpdate(ctx context.Context, requests []*sheetsapi.Request) error
	SheetID(ctx context.Context, name string) (int64, error)
}

// GoogleClient Google Sheets API v4 구현
type GoogleClient struct {
	service       *sheetsapi.Service
	spreadsheetID string
}

// NewGoogleClient 서비스 계정 자격 증명으로 클라이언트 생성
func NewGoogleClient(ctx context.Context, cfg config.GoogleConfig) (*GoogleClient, error) {
	privateKey, err := cfg.ResolvePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("Google Sheets API 인증에 필요한 개인 키를 읽을 수 없습니다: %w", err)
	}

	jwtConfig := &jwt.Config{
		Email:      cfg.ServiceAccountEmail,
		PrivateKey: []byte(privateKey),
		Scopes:     []string{sheetsapi.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	srv, err := sheetsapi.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("Google Sheets API 클라이언트를 생성하는 중 오류가 발생했습니다: %w", err)
	}

	return &GoogleClient{
		service:       srv,
		spreadsheetID: cfg.SpreadsheetID,
	}, nil
}

// Get 범위 읽기
func (c *GoogleClient) Get(ctx context.Context, rng string) ([][]string, error) {
	resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("스프레드시트 범위(%s) 조회 실패: %w", rng, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Update 범위 덮어쓰기
func (c *GoogleClient) Update(ctx context.Context, rng string, values [][]interface{}) error {
	_, err := c.service.Spreadsheets.Values.Update(
		c.spreadsheetID,
		rng,
		&sheetsapi.ValueRange{Values: values},
	).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("스프레드시트 범위(%s) 업데이트 실패: %w", rng, err)
	}
	return nil
}

// Append 마지막 데이터 행 뒤에 추가
func (c *GoogleClient) Append(ctx context.Context, rng string, values [][]interface{}) error {
	_, err := c.service.Spreadsheets.Values.Append(
		c.spreadsheetID,
		rng,
		&sheetsapi.ValueRange{Values: values},
	).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("스프레드시트 범위(%s) 행 추가 실패: %w", rng, err)
	}
	return nil
}

// BatchUpdate 구조 변경 요청 (셀 서식, 행 삭제)
func (c *GoogleClient) BatchUpdate(ctx context.Context, requests []*sheetsapi.Request) error {
	_, err := c.service.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("스프레드시트 일괄 업데이트 실패: %w", err)
	}
	return nil
}

// SheetID 시트 이름으로 시트 ID 조회
func (c *GoogleClient) SheetID(ctx context.Context, name string) (int64, error) {
	ss, err := c.service.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("스프레드시트 메타데이터 조회 실패: %w", err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties.Title == name {
			return sh.Properties.SheetId, nil
		}
	}
	log.Warnf("시트를 찾을 수 없음: %s", name)
	return 0, fmt.Errorf("시트를 찾을 수 없습니다: %s", name)
}
