package report

import (
	"encoding/json"
	"io"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/depdiff/pkg/domain/model"
)

type jsonWriter struct{}

func (x *jsonWriter) Write(w io.Writer, report *model.ScanReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return goerr.Wrap(err, "failed to encode report")
	}
	return nil
}
