package sheets

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/smallbiznis/answer-bridge/internal/domain/oauth"
	"github.com/smallbiznis/answer-bridge/internal/domain/submission"
)

const valueInputRaw = "RAW"

// Appender writes one row to the remote spreadsheet.
type Appender interface {
	Append(ctx context.Context, tokens oauth.TokenSet, record submission.Record) error
}

// SheetsAppender appends rows through the Sheets v4 values.append call.
type SheetsAppender struct {
	spreadsheetID string
	sheetRange    string
	httpClient    *http.Client
	opts          []option.ClientOption
}

var _ Appender = (*SheetsAppender)(nil)

// NewSheetsAppender targets a fixed spreadsheet and range. Extra options are
// passed to the Sheets service, e.g. option.WithEndpoint in tests.
func NewSheetsAppender(spreadsheetID, sheetRange string, base *http.Client, opts ...option.ClientOption) *SheetsAppender {
	if base == nil {
		base = &http.Client{Timeout: 15 * time.Second}
	}
	return &SheetsAppender{
		spreadsheetID: spreadsheetID,
		sheetRange:    sheetRange,
		httpClient:    base,
		opts:          opts,
	}
}

// Append sends record with the given token as a static bearer credential.
// The token is never refreshed; an expired token fails at the API.
func (a *SheetsAppender) Append(ctx context.Context, tokens oauth.TokenSet, record submission.Record) error {
	if strings.TrimSpace(tokens.AccessToken) == "" {
		return oauth.ErrNoToken
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: tokens.AccessToken,
		TokenType:   tokens.TokenType,
	})
	client := oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, a.httpClient), src)

	opts := append([]option.ClientOption{option.WithHTTPClient(client)}, a.opts...)
	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return fmt.Errorf("sheets client: %w", err)
	}

	body := &sheetsapi.ValueRange{Values: [][]interface{}{record.Values()}}
	_, err = svc.Spreadsheets.Values.Append(a.spreadsheetID, a.sheetRange, body).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}
