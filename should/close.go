// Package should runs cleanup that is expected to succeed, logging rather
// than returning a failure. It is meant for defer statements.
package should

import (
	"io"

	"github.com/amp-labs/amp-sortedlist/logger"
)

// Close closes closer and logs msg with the error if that fails.
//
//	defer should.Close(file, "closing config file")
func Close(closer io.Closer, msg string) {
	if err := closer.Close(); err != nil {
		logger.Get().Error(msg, "error", err)
	}
}
