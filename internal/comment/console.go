package comment

import (
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

// ConsolePrinter buffers notes about generated code and logs them on Flush.
type ConsolePrinter struct {
	mu       sync.Mutex
	appRoot  string
	comments []string
}

// initialize this if you want to use it at the start of the program
var printer *ConsolePrinter

// EnableConsolePrinter starts buffering notes. Positions are shortened to
// paths relative to root.
func EnableConsolePrinter(root string) {
	printer = &ConsolePrinter{
		appRoot: root,
	}
}

// WriteAll logs every buffered note.
func WriteAll() {
	if printer != nil {
		printer.Flush()
	}
}

// Add appends a new note to the buffer.
// The message is the main note, and additionalInfo is a list of optional
// lines that will be printed below the main note.
func (p *ConsolePrinter) Add(position, header, message string, additionalInfo ...string) {
	if p == nil {
		return
	}

	pos := getPosition(position, p.appRoot)

	b := strings.Builder{}
	b.WriteString(header)
	b.WriteString(" - ")

	if pos != "" {
		b.WriteString(pos)
		b.WriteByte(' ')
	}
	b.WriteString(message)
	for _, info := range additionalInfo {
		b.WriteString("\n\t")
		b.WriteString(info)
	}

	p.mu.Lock()
	p.comments = append(p.comments, b.String())
	p.mu.Unlock()
}

// Flush logs all the buffered notes at debug level and clears the buffer.
func (p *ConsolePrinter) Flush() {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range p.comments {
		log.Debug("pyexpr::comment::Flush; " + c)
	}
	p.comments = []string{}
}
