package output

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/sdejongh/tablediff/pkg/models"
	"github.com/sdejongh/tablediff/pkg/storage"
)

// DefaultReportName is the artifact written when no output path is configured
const DefaultReportName = "compare_output.json"

// MarshalReport renders the report artifact: JSON with 4-space indentation,
// sorted object keys and no HTML escaping
func MarshalReport(report *models.Report) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "    ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(report); err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteReport serializes the report and writes it to name on the backend,
// replacing any previous content
func WriteReport(ctx context.Context, backend storage.Backend, name string, report *models.Report) error {
	data, err := MarshalReport(report)
	if err != nil {
		return err
	}

	if err := backend.Write(ctx, name, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
