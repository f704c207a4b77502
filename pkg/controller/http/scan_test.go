package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	controller "github.com/m-mizutani/depdiff/pkg/controller/http"
	"github.com/m-mizutani/depdiff/pkg/domain/interfaces"
	"github.com/m-mizutani/depdiff/pkg/domain/model"
	"github.com/m-mizutani/depdiff/pkg/infra/jobstore"
	"github.com/m-mizutani/depdiff/pkg/parser"
	"github.com/m-mizutani/depdiff/pkg/usecase"
)

// MockScanUseCase is a mock implementation of ScanUseCase. It parses the
// lockfile for real so that parse errors surface like in production.
type MockScanUseCase struct {
	err error

	mu     sync.Mutex
	inputs []interfaces.ScanInput
}

func (m *MockScanUseCase) Scan(ctx context.Context, input interfaces.ScanInput) (*model.ScanReport, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}

	format, err := parser.ParseFormat(input.Format)
	if err != nil {
		return nil, err
	}
	packages, err := parser.ParseLockfile(format, input.Lockfile)
	if err != nil {
		return nil, err
	}

	report := &model.ScanReport{Format: input.Format, Extension: input.Extension}
	for _, pkg := range packages {
		decision := model.Skip(model.SkipAlreadyLatest)
		pkg.LatestVersion = pkg.CurrentVersion
		report.Packages = append(report.Packages, model.PackageReport{Package: pkg, Decision: &decision})
	}
	return report, nil
}

func newTestServer(t *testing.T, scanUC *MockScanUseCase, opts ...controller.Option) http.Handler {
	t.Helper()

	server, err := controller.NewServer(context.Background(), scanUC, usecase.NewJobs(scanUC, jobstore.NewMemory()), opts...)
	gt.NoError(t, err)
	return server.Handler
}

func TestScanEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		body       string
		scanErr    error
		wantStatus int
		wantType   string
	}{
		{
			name:       "json report",
			query:      "?format=result&ext=.py",
			body:       "requests==2.31.0\n",
			wantStatus: http.StatusOK,
			wantType:   "application/json",
		},
		{
			name:       "text report",
			query:      "?format=result&output=text",
			body:       "requests==2.31.0\n",
			wantStatus: http.StatusOK,
			wantType:   "text/plain; charset=utf-8",
		},
		{
			name:       "missing format",
			query:      "",
			body:       "requests==2.31.0\n",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown output",
			query:      "?format=result&output=xml",
			body:       "requests==2.31.0\n",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed lockfile",
			query:      "?format=result",
			body:       "requests>=2.0\n",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "scan failure",
			query:      "?format=result",
			body:       "requests==2.31.0\n",
			scanErr:    errors.New("registry unavailable"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestServer(t, &MockScanUseCase{err: tt.scanErr})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/scan"+tt.query, strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Status code = %v, want %v (body: %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantType != "" && w.Header().Get("Content-Type") != tt.wantType {
				t.Errorf("Content-Type = %v, want %v", w.Header().Get("Content-Type"), tt.wantType)
			}
		})
	}
}

func TestScanEndpoint_Report(t *testing.T) {
	scanUC := &MockScanUseCase{}
	handler := newTestServer(t, scanUC)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan?format=result&ext=.py", strings.NewReader("requests==2.31.0\nidna==3.7\n"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	gt.V(t, w.Code).Equal(http.StatusOK)

	var report model.ScanReport
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&report))
	gt.A(t, report.Packages).Length(2)
	gt.V(t, report.Packages[1].Package.Name).Equal("idna")

	gt.A(t, scanUC.inputs).Length(1)
	gt.V(t, scanUC.inputs[0]).Equal(interfaces.ScanInput{
		Format:    "result",
		Lockfile:  "requests==2.31.0\nidna==3.7\n",
		Extension: ".py",
	})
}

func TestScanEndpoint_BodyTooLarge(t *testing.T) {
	handler := newTestServer(t, &MockScanUseCase{}, controller.WithMaxBodyBytes(8))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan?format=result", strings.NewReader("requests==2.31.0\n"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	gt.V(t, w.Code).Equal(http.StatusRequestEntityTooLarge)
}

func TestJobEndpoints(t *testing.T) {
	handler := newTestServer(t, &MockScanUseCase{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs?format=result", strings.NewReader("requests==2.31.0\n"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	gt.V(t, w.Code).Equal(http.StatusAccepted)

	var submitted model.ScanJob
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&submitted))
	gt.V(t, submitted.ID).NotEqual("")
	gt.V(t, w.Header().Get("Location")).Equal("/api/v1/jobs/" + submitted.ID)

	var job model.ScanJob
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/"+submitted.ID, nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		gt.V(t, w.Code).Equal(http.StatusOK)

		gt.NoError(t, json.NewDecoder(w.Body).Decode(&job))
		if job.IsDone() {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	gt.V(t, job.Status).Equal(model.JobSucceeded)
	gt.V(t, job.Report).NotNil()
	gt.A(t, job.Report.Packages).Length(1)
}

func TestJobEndpoints_Errors(t *testing.T) {
	handler := newTestServer(t, &MockScanUseCase{})

	t.Run("unknown job", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/does-not-exist", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		gt.V(t, w.Code).Equal(http.StatusNotFound)

		var body map[string]string
		gt.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		gt.V(t, body["error"]).NotEqual("")
	})

	t.Run("malformed lockfile", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs?format=lock", strings.NewReader("[[package]]\nname = \"foo\n"))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		gt.V(t, w.Code).Equal(http.StatusBadRequest)
	})
}
