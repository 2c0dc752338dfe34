package util

import (
	"strings"

	"github.com/dave/dst"
	log "github.com/sirupsen/logrus"
)

// DebugPrint returns the field by field dump of node, leaving out nil fields.
func DebugPrint(node dst.Node) string {
	dump := strings.Builder{}
	_ = dst.Fprint(&dump, node, dst.NotNilFilter)
	return dump.String()
}

// LogNode logs the dump of node under the "node" field at debug level. The
// dump is only built when debug logging is enabled.
func LogNode(message string, node dst.Node, fields log.Fields) {
	if !log.IsLevelEnabled(log.DebugLevel) {
		return
	}
	log.WithFields(fields).WithField("node", DebugPrint(node)).Debug(message)
}
