package poster

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DataURL is an inline encoded image of the form data:<mime>;base64,<payload>.
// Images flow between the editor, the exporter and the AI collaborator in
// this representation.
type DataURL struct {
	MIMEType string
	Data     []byte
}

// NewDataURL wraps encoded bytes, detecting the MIME type from their content.
func NewDataURL(data []byte) DataURL {
	return DataURL{MIMEType: sniffMIME(data), Data: data}
}

// ParseDataURL splits a base64 data URL into its MIME type and payload.
func ParseDataURL(s string) (DataURL, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), "data:")
	if !ok {
		return DataURL{}, fmt.Errorf("%w: missing data: scheme", ErrInvalidDataURL)
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return DataURL{}, fmt.Errorf("%w: missing payload separator", ErrInvalidDataURL)
	}
	mime, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return DataURL{}, fmt.Errorf("%w: payload is not base64", ErrInvalidDataURL)
	}
	if mime == "" {
		return DataURL{}, fmt.Errorf("%w: missing MIME type", ErrInvalidDataURL)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return DataURL{}, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	return DataURL{MIMEType: mime, Data: data}, nil
}

// String formats the data URL.
func (d DataURL) String() string {
	return "data:" + d.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(d.Data)
}

// IsZero reports whether the data URL carries no payload.
func (d DataURL) IsZero() bool {
	return len(d.Data) == 0
}

// Extension returns the file extension matching the MIME type, without the dot.
func (d DataURL) Extension() string {
	return mimeExtension(d.MIMEType)
}
