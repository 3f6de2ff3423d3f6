package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/YuminosukeSato/polyfit/pkg/errors"
)

func TestTestLoggerLevels(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelInfo)

	testLogger.Debug("hidden")
	testLogger.Info("info message", OperationKey, OperationFit)
	testLogger.Warn("warning message")
	testLogger.Error("error message", fmt.Errorf("boom"), ErrorCodeKey, ErrorSingularSystem)

	require.NotEmpty(t, buffer.String())
	assert.False(t, testLogger.ContainsMessage("hidden"))
	assert.True(t, testLogger.ContainsMessage("info message"))
	assert.True(t, testLogger.ContainsMessage("warning message"))
	assert.True(t, testLogger.ContainsField(ErrAttrKey, "boom"))
	assert.True(t, testLogger.ContainsField(ErrorCodeKey, ErrorSingularSystem))

	ctx := context.Background()
	assert.True(t, testLogger.Enabled(ctx, LevelError))
	assert.False(t, testLogger.Enabled(ctx, LevelDebug))
}

func TestTestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	child := testLogger.With(ModelNameKey, "PolynomialRegression", DegreeKey, 3)
	child.Info("fit completed", SamplesKey, 40)

	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "PolynomialRegression", entries[0][ModelNameKey])
	assert.Equal(t, 3.0, entries[0][DegreeKey])
	assert.Equal(t, 40.0, entries[0][SamplesKey])
}

func TestTestLoggerProvider(t *testing.T) {
	provider, buffer := NewTestLoggerProvider(LevelDebug)
	prev := SetProvider(provider)
	defer SetProvider(prev)

	GetLoggerWithName("polynomial").Info("named logger message")
	assert.Contains(t, buffer.String(), "named logger message")
	assert.True(t, provider.Logger().ContainsField(ComponentKey, "polynomial"))

	SetGlobalLevel(LevelError)
	GetLogger().Info("suppressed")
	assert.NotContains(t, buffer.String(), "suppressed")
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelDebug)

	err := perrors.NewInsufficientSamplesError("polynomial.Fit", 2, 5)
	logger.With(ComponentKey, "polynomial").Error("fit failed", err,
		DegreeKey, 5,
		CoefficientsKey, []float64{1, 2},
	)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "fit failed", entry["message"])
	assert.Equal(t, "polynomial", entry[ComponentKey])
	assert.Equal(t, 5.0, entry[DegreeKey])
	assert.Contains(t, entry["error"], "need at least 6")

	detail, ok := entry["error_detail"].(map[string]interface{})
	require.True(t, ok, "expected structured error detail")
	assert.Equal(t, "InsufficientSamplesError", detail["type"])
	assert.NotEmpty(t, entry[StacktraceAttrKey])
}

func TestZerologLoggerEnabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelWarn)

	logger.Info("dropped")
	assert.Empty(t, buf.String())
	assert.False(t, logger.Enabled(context.Background(), LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), LevelError))
}

func TestWarningsRoutedToZerolog(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(&bytes.Buffer{})

	perrors.Warn(perrors.NewIllConditionedWarning("polynomial.Fit", 8, 1e14, 1e12))

	out := buf.String()
	assert.Contains(t, out, "polyfit warning")
	assert.Contains(t, out, `"ml.component":"warnings"`)
	assert.Contains(t, out, "IllConditionedWarning")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLoggerAddsStacktrace(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	defer slog.SetDefault(prev)
	defer SetOutput(&bytes.Buffer{})

	require.NoError(t, SetupLoggerTo(&buf, "debug"))
	defer SetGlobalLevel(LevelInfo)

	err := perrors.Wrap(perrors.NewRatioError("dataset.Split", 1.5), "evaluate")
	slog.Error("split failed", ErrAttr(err))

	line := strings.TrimSpace(buf.String())
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "ERROR", entry["severity"])
	assert.Equal(t, "split failed", entry["message"])
	assert.NotEmpty(t, entry[StacktraceAttrKey])

	assert.Error(t, SetupLoggerTo(&buf, "loud"))
}
