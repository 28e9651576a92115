package multipart

import (
	"fmt"

	"github.com/bft-labs/formship/internal/domain"
)

// PartsFor converts parameters to parts in order. File parameters become
// FileParts; every other parameter becomes a ValuePart encoded with charset.
func PartsFor(params []domain.Parameter, charset string) ([]Part, error) {
	parts := make([]Part, 0, len(params))
	for _, param := range params {
		if param.IsFile() {
			p, err := NewFilePart(param.Name, param.Value)
			if err != nil {
				return nil, fmt.Errorf("file parameter %q: %w", param.Name, err)
			}
			parts = append(parts, p)
			continue
		}
		p, err := NewValuePart(param.Name, param.Value, charset)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", param.Name, err)
		}
		parts = append(parts, p)
	}
	return parts, nil
}
