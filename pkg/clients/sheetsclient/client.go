package sheetsclient

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/adilbekov/umrah-rooming/internal/config"
	"github.com/adilbekov/umrah-rooming/pkg/core/manifest"
	"github.com/adilbekov/umrah-rooming/pkg/utils"
)

// Client wraps the Google Sheets API client
type Client struct {
	service *sheets.Service
	ctx     context.Context
}

// NewClient creates a new Sheets client using OAuth credentials and performs OAuth flow if needed
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg, []string{utils.ScopeSheets})
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	// Get token (will perform OAuth flow if needed)
	token, err := utils.GetTokenWithFlow(ctx, oauthConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth token: %w", err)
	}

	httpClient := oauthConfig.Client(ctx, token)

	service, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service: service,
		ctx:     ctx,
	}, nil
}

// NewClientWithToken creates a new Sheets client using an existing token
func NewClientWithToken(ctx context.Context, oauthCfg *config.OAuthClientConfig, token *oauth2.Token) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg, []string{utils.ScopeSheets})
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	httpClient := oauthConfig.Client(ctx, token)

	service, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service: service,
		ctx:     ctx,
	}, nil
}

// Service returns the underlying sheets service for direct API access
func (c *Client) Service() *sheets.Service {
	return c.service
}

// GetValues reads values from a spreadsheet range
func (c *Client) GetValues(spreadsheetID, sheetRange string) ([][]interface{}, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, sheetRange).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get values: %w", err)
	}

	return resp.Values, nil
}

// GetGrid downloads the full contents of one worksheet as a string grid.
// Everything the sheet holds is stringified the way it renders, which is
// what the package locator and header resolver expect.
func (c *Client) GetGrid(spreadsheetID, sheetTitle string) (manifest.Grid, error) {
	values, err := c.GetValues(spreadsheetID, quoteSheetTitle(sheetTitle))
	if err != nil {
		return nil, fmt.Errorf("failed to download sheet %q: %w", sheetTitle, err)
	}

	grid := make(manifest.Grid, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprintf("%v", v)
		}
		grid[i] = cells
	}
	return grid, nil
}

// SheetTitles lists the worksheet tab titles of a spreadsheet. Only sheet
// properties are fetched, not cell contents.
func (c *Client) SheetTitles(spreadsheetID string) ([]string, error) {
	ss, err := c.service.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	titles := make([]string, 0, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			titles = append(titles, sh.Properties.Title)
		}
	}
	return titles, nil
}

// SheetID resolves a worksheet title to its numeric sheet ID, which
// structural requests (row insertion, merges) are keyed on. The match is
// exact first, then case-insensitive on trimmed titles.
func (c *Client) SheetID(spreadsheetID, sheetTitle string) (int64, error) {
	ss, err := c.service.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties").Do()
	if err != nil {
		return 0, fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	want := strings.TrimSpace(sheetTitle)
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == want {
			return sh.Properties.SheetId, nil
		}
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && strings.EqualFold(strings.TrimSpace(sh.Properties.Title), want) {
			return sh.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("worksheet %q not found in spreadsheet %s", sheetTitle, spreadsheetID)
}

// quoteSheetTitle wraps a tab title so it survives as an A1 range even
// when it contains spaces or quotes.
func quoteSheetTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
