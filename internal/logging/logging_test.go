package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-themes/pkg/interfaces"
)

type recordingLogger struct {
	fields []map[string]any
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	r.fields = append(r.fields, fields)
	return r
}

func (r *recordingLogger) WithContext(context.Context) interfaces.Logger { return r }

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, assetsModule)
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger.WithContext(context.Background()).Debug("noop")
}

func TestModuleLoggerAnnotatesModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = PluginsLogger(provider)

	if len(provider.requested) != 1 || provider.requested[0] != pluginsModule {
		t.Fatalf("expected module %s, got %v", pluginsModule, provider.requested)
	}
	if len(rec.fields) != 1 || rec.fields[0]["module"] != pluginsModule {
		t.Fatalf("expected module field %s, got %v", pluginsModule, rec.fields)
	}
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}
	_ = ModuleLogger(provider, "")
	if provider.requested[0] != rootModule {
		t.Fatalf("expected root module, got %v", provider.requested)
	}
}

func TestContextFieldsMergeAndCopy(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"request_id": "a"})
	ctx = ContextWithFields(ctx, map[string]any{"theme": "starter"})

	fields := ContextFields(ctx)
	if fields["request_id"] != "a" || fields["theme"] != "starter" {
		t.Fatalf("unexpected fields %v", fields)
	}

	fields["theme"] = "mutated"
	if ContextFields(ctx)["theme"] != "starter" {
		t.Fatalf("expected a copy of the fields")
	}
}
