package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Credentials is the service-account bundle used to reach the spreadsheet.
// Exactly one of File or JSON is expected; JSON wins when both are set.
type Credentials struct {
	File string
	JSON string
}

// Client reads cell values from Google Sheets.
type Client struct {
	service *sheetsapi.Service
}

// NewClient authenticates with the service-account credentials and returns a read-only client.
func NewClient(ctx context.Context, creds Credentials) (*Client, error) {
	data, err := creds.bytes()
	if err != nil {
		return nil, err
	}

	jwtCfg, err := google.JWTConfigFromJSON(data, sheetsapi.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("invalid service account credentials: %w", err)
	}

	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(jwtCfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Client{service: svc}, nil
}

// GetAllValues returns every formatted cell of the worksheet, row by row, as strings.
func (c *Client) GetAllValues(ctx context.Context, spreadsheetKey, worksheet string) ([][]string, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetKey, worksheet).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", worksheet, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			if cell == nil {
				continue
			}
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (c Credentials) bytes() ([]byte, error) {
	if c.JSON != "" {
		return []byte(c.JSON), nil
	}
	if c.File == "" {
		return nil, errors.New("no service account credentials configured")
	}
	data, err := os.ReadFile(c.File)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return data, nil
}
