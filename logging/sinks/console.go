// Package sinks provides the standard Sink implementations for the logging
// router: console, JSON file, and in-memory (for tests).
package sinks

import (
	"context"
	"fmt"
	"io"
	"log"

	"calcdex/logging"
)

// ConsoleSink writes one human-readable line per event.
type ConsoleSink struct {
	logger *log.Logger
}

func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{logger: log.New(w, "", log.LstdFlags)}
}

func (s *ConsoleSink) Write(event logging.Event) error {
	if s.logger == nil {
		return nil
	}
	suffix := ""
	if event.Op != "" {
		suffix += " op=" + event.Op
	}
	if event.Reason != "" {
		suffix += " reason=" + event.Reason
	}
	if event.Duration > 0 {
		suffix += fmt.Sprintf(" duration=%s", event.Duration)
	}
	s.logger.Printf("[%s] battle=%s actor=%s severity=%s%s",
		event.Type, event.BattleID, formatEntity(event.Actor), formatSeverity(event.Severity), suffix)
	return nil
}

func (s *ConsoleSink) Close(context.Context) error {
	return nil
}

func formatSeverity(sev logging.Severity) string {
	switch sev {
	case logging.SeverityDebug:
		return "debug"
	case logging.SeverityInfo:
		return "info"
	case logging.SeverityWarn:
		return "warn"
	case logging.SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

func formatEntity(ref logging.EntityRef) string {
	if ref.ID == "" {
		return string(ref.Kind)
	}
	if ref.Kind == "" {
		return ref.ID
	}
	return fmt.Sprintf("%s:%s", ref.Kind, ref.ID)
}
