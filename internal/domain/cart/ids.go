// internal/domain/cart/ids.go
package cart

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewLineID returns "<unix millis>-<7 random hex chars>"
func NewLineID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), suffix[:7])
}
