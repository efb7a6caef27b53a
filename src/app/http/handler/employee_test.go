package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"employeedirectory/src/app/http/response"
	"employeedirectory/src/core/domain"
	"employeedirectory/src/core/usecase"
)

// stubDirectory implements usecase.DirectoryUseCase with settable behavior
// per method. Unset methods panic so each test declares what it exercises.
type stubDirectory struct {
	list          func(ctx context.Context) ([]domain.Employee, error)
	get           func(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	averageSalary func(ctx context.Context, role string) (*usecase.RoleSalarySummary, error)
	bossPeers     func(ctx context.Context, id uuid.UUID) ([]domain.Employee, error)
	search        func(ctx context.Context, namePart string, start, end time.Time) ([]domain.Employee, error)
	create        func(ctx context.Context, t domain.EmployeeTransfer) (*domain.Employee, error)
	update        func(ctx context.Context, id uuid.UUID, t domain.EmployeeTransfer) (*domain.Employee, error)
	updateSalary  func(ctx context.Context, id uuid.UUID, salary int) (*domain.Employee, error)
	remove        func(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
}

func (s *stubDirectory) List(ctx context.Context) ([]domain.Employee, error) { return s.list(ctx) }
func (s *stubDirectory) Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	return s.get(ctx, id)
}
func (s *stubDirectory) AverageSalaryByRole(ctx context.Context, role string) (*usecase.RoleSalarySummary, error) {
	return s.averageSalary(ctx, role)
}
func (s *stubDirectory) ListBossPeers(ctx context.Context, id uuid.UUID) ([]domain.Employee, error) {
	return s.bossPeers(ctx, id)
}
func (s *stubDirectory) SearchByNameAndDateRange(ctx context.Context, namePart string, start, end time.Time) ([]domain.Employee, error) {
	return s.search(ctx, namePart, start, end)
}
func (s *stubDirectory) Create(ctx context.Context, t domain.EmployeeTransfer) (*domain.Employee, error) {
	return s.create(ctx, t)
}
func (s *stubDirectory) Update(ctx context.Context, id uuid.UUID, t domain.EmployeeTransfer) (*domain.Employee, error) {
	return s.update(ctx, id, t)
}
func (s *stubDirectory) UpdateSalary(ctx context.Context, id uuid.UUID, salary int) (*domain.Employee, error) {
	return s.updateSalary(ctx, id, salary)
}
func (s *stubDirectory) Delete(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	return s.remove(ctx, id)
}

func newTestRouter(stub *stubDirectory) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewEmployeeHandler(stub)

	r := gin.New()
	v1 := r.Group("/v1")
	employees := v1.Group("/employees")
	employees.GET("", h.List)
	employees.POST("", h.Create)
	employees.GET("/search", h.Search)
	employees.GET("/average-salary", h.AverageSalary)
	employees.GET("/:employee_id", h.Get)
	employees.PUT("/:employee_id", h.Update)
	employees.DELETE("/:employee_id", h.Delete)
	employees.GET("/:employee_id/boss-peers", h.BossPeers)
	employees.PUT("/:employee_id/salary", h.UpdateSalary)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorDetail {
	t.Helper()

	var envelope response.Error
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode error envelope: %v (body %s)", err, w.Body.String())
	}
	return envelope.Error
}

func testEmployee() *domain.Employee {
	return &domain.Employee{
		ID:             uuid.New(),
		FirstName:      "John",
		LastName:       "Doe",
		Birthdate:      time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		EmploymentDate: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		HomeAddress:    "12 Main Street",
		CurrentSalary:  50000,
		Role:           "Dev",
		Boss:           "Tom",
	}
}

const validEmployeeBody = `{
	"first_name": "John",
	"last_name": "Doe",
	"birthdate": "1990-01-01",
	"employment_date": "2020-01-01",
	"home_address": "12 Main Street",
	"current_salary": 50000,
	"role": "Dev",
	"boss": "Tom"
}`

func TestListEmployees(t *testing.T) {
	emp := testEmployee()
	stub := &stubDirectory{list: func(context.Context) ([]domain.Employee, error) {
		return []domain.Employee{*emp}, nil
	}}

	w := doRequest(t, newTestRouter(stub), http.MethodGet, "/v1/employees", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var envelope struct {
		Data []struct {
			ID        string `json:"id"`
			Birthdate string `json:"birthdate"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].ID != emp.ID.String() {
		t.Fatalf("unexpected payload: %s", w.Body.String())
	}
	if envelope.Data[0].Birthdate != "1990-01-01" {
		t.Fatalf("expected wire-format date, got %q", envelope.Data[0].Birthdate)
	}
}

func TestListEmployees_EmptySerializesAsArray(t *testing.T) {
	stub := &stubDirectory{list: func(context.Context) ([]domain.Employee, error) {
		return nil, nil
	}}

	w := doRequest(t, newTestRouter(stub), http.MethodGet, "/v1/employees", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"data":[]`) {
		t.Fatalf("expected empty array payload, got %s", w.Body.String())
	}
}

func TestGetEmployee(t *testing.T) {
	emp := testEmployee()
	stub := &stubDirectory{get: func(_ context.Context, id uuid.UUID) (*domain.Employee, error) {
		if id != emp.ID {
			t.Fatalf("unexpected id %s", id)
		}
		return emp, nil
	}}

	w := doRequest(t, newTestRouter(stub), http.MethodGet, "/v1/employees/"+emp.ID.String(), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetEmployee_NotFound(t *testing.T) {
	stub := &stubDirectory{get: func(context.Context, uuid.UUID) (*domain.Employee, error) {
		return nil, domain.NewNotFoundError("employee")
	}}

	w := doRequest(t, newTestRouter(stub), http.MethodGet, "/v1/employees/"+uuid.NewString(), "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if detail := decodeError(t, w); detail.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND code, got %q", detail.Code)
	}
}

func TestGetEmployee_MalformedID(t *testing.T) {
	stub := &stubDirectory{}

	w := doRequest(t, newTestRouter(stub), http.MethodGet, "/v1/employees/not-a-uuid", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if detail := decodeError(t, w); detail.Code != "BAD_REQUEST" {
		t.Fatalf("expected BAD_REQUEST code, got %q", detail.Code)
	}
}

func TestAverageSalary(t *testing.T) {
	stub := &stubDirectory{averageSalary: func(_ context.Context, role string) (*usecase.RoleSalarySummary, error) {
		if role != "Dev" {
			t.Fatalf("unexpected role %q", role)
		}
		return &usecase.RoleSalarySummary{Role: role, Count: 2, AverageSalary: 25000}, nil
	}}

	w := doRequest(t, newTestRouter(stub), http.MethodGet, "/v1/employees/average-salary?role=Dev", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Employee Count = 2, Average Salary = 25000") {
		t.Fatalf("expected report line in payload, got %s", w.Body.String())
	}
}

func TestAverageSalary_NoMatches(t *testing.T) {
	stub := &stubDirectory{averageSalary: func(context.Context, string) (*usecase.RoleSalarySummary, error) {
		return nil, domain.NewEmptyResultError("no employees found with role: Intern")
	}}

	w := doRequest(t, newTestRouter(stub), http.MethodGet, "/v1/employees/average-salary?role=Intern", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if detail := decodeError(t, w); detail.Code != "NO_MATCH" {
		t.Fatalf("expected NO_MATCH code, got %q", detail.Code)
	}
}

func TestBossPeers(t *testing.T) {
	emp := testEmployee()
	stub := &stubDirectory{bossPeers: func(_ context.Context, id uuid.UUID) ([]domain.Employee, error) {
		if id != emp.ID {
			t.Fatalf("unexpected id %s", id)
		}
		return []domain.Employee{*emp}, nil
	}}

	w := doRequest(t, newTestRouter(stub), http.MethodGet, "/v1/employees/"+emp.ID.String()+"/boss-peers", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSearch(t *testing.T) {
	emp := testEmployee()
	stub := &stubDirectory{search: func(_ context.Context, namePart string, start, end time.Time) ([]domain.Employee, error) {
		if namePart != "John" {
			t.Fatalf("unexpected name %q", namePart)
		}
		if start.Format("2006-01-02") != "2000-01-01" || end.Format("2006-01-02") != "2023-10-12" {
			t.Fatalf("unexpected range %v..%v", start, end)
		}
		return []domain.Employee{*emp}, nil
	}}

	w := doRequest(t, newTestRouter(stub), http.MethodGet,
		"/v1/employees/search?name=John&start_date=2000-01-01&end_date=2023-10-12", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSearch_MalformedDate(t *testing.T) {
	stub := &stubDirectory{}

	w := doRequest(t, newTestRouter(stub), http.MethodGet,
		"/v1/employees/search?name=John&start_date=01-01-2000", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSearch_MissingNameReachesFacade(t *testing.T) {
	stub := &stubDirectory{search: func(_ context.Context, namePart string, _, _ time.Time) ([]domain.Employee, error) {
		if namePart != "" {
			t.Fatalf("expected empty name, got %q", namePart)
		}
		return nil, domain.NewValidationError("name", "name is required")
	}}

	w := doRequest(t, newTestRouter(stub), http.MethodGet, "/v1/employees/search", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if detail := decodeError(t, w); detail.Field != "name" {
		t.Fatalf("expected field name, got %q", detail.Field)
	}
}

func TestCreateEmployee(t *testing.T) {
	emp := testEmployee()
	stub := &stubDirectory{create: func(_ context.Context, transfer domain.EmployeeTransfer) (*domain.Employee, error) {
		if transfer.FirstName != "John" || transfer.CurrentSalary != 50000 {
			t.Fatalf("unexpected transfer: %+v", transfer)
		}
		return emp, nil
	}}

	w := doRequest(t, newTestRouter(stub), http.MethodPost, "/v1/employees", validEmployeeBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateEmployee_MissingField(t *testing.T) {
	stub := &stubDirectory{}

	w := doRequest(t, newTestRouter(stub), http.MethodPost, "/v1/employees", `{"first_name": "John"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCreateEmployee_MalformedDate(t *testing.T) {
	stub := &stubDirectory{}
	body := strings.Replace(validEmployeeBody, "1990-01-01", "01.01.1990", 1)

	w := doRequest(t, newTestRouter(stub), http.MethodPost, "/v1/employees", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCreateEmployee_SecondCEOConflict(t *testing.T) {
	stub := &stubDirectory{create: func(context.Context, domain.EmployeeTransfer) (*domain.Employee, error) {
		return nil, domain.NewConflictError("there can be only one employee with the CEO role")
	}}

	w := doRequest(t, newTestRouter(stub), http.MethodPost, "/v1/employees", validEmployeeBody)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if detail := decodeError(t, w); detail.Code != "CONFLICT" {
		t.Fatalf("expected CONFLICT code, got %q", detail.Code)
	}
}

func TestUpdateEmployee(t *testing.T) {
	emp := testEmployee()
	stub := &stubDirectory{update: func(_ context.Context, id uuid.UUID, transfer domain.EmployeeTransfer) (*domain.Employee, error) {
		if id != emp.ID {
			t.Fatalf("unexpected id %s", id)
		}
		if transfer.LastName != "Doe" {
			t.Fatalf("unexpected transfer: %+v", transfer)
		}
		return emp, nil
	}}

	w := doRequest(t, newTestRouter(stub), http.MethodPut, "/v1/employees/"+emp.ID.String(), validEmployeeBody)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateEmployee_ValidationErrorCarriesField(t *testing.T) {
	stub := &stubDirectory{update: func(context.Context, uuid.UUID, domain.EmployeeTransfer) (*domain.Employee, error) {
		return nil, domain.NewValidationError("age", "employee must be between 18 and 70 years old")
	}}

	w := doRequest(t, newTestRouter(stub), http.MethodPut, "/v1/employees/"+uuid.NewString(), validEmployeeBody)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	detail := decodeError(t, w)
	if detail.Code != "VALIDATION_ERROR" || detail.Field != "age" {
		t.Fatalf("unexpected error detail: %+v", detail)
	}
}

func TestUpdateSalary(t *testing.T) {
	emp := testEmployee()
	stub := &stubDirectory{updateSalary: func(_ context.Context, id uuid.UUID, salary int) (*domain.Employee, error) {
		if id != emp.ID || salary != 60000 {
			t.Fatalf("unexpected call: id=%s salary=%d", id, salary)
		}
		return emp, nil
	}}

	w := doRequest(t, newTestRouter(stub), http.MethodPut,
		"/v1/employees/"+emp.ID.String()+"/salary", `{"salary": 60000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateSalary_NonPositive(t *testing.T) {
	// salary 0 fails the required binding before the facade is consulted.
	stub := &stubDirectory{}

	w := doRequest(t, newTestRouter(stub), http.MethodPut,
		"/v1/employees/"+uuid.NewString()+"/salary", `{"salary": 0}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestDeleteEmployee(t *testing.T) {
	emp := testEmployee()
	stub := &stubDirectory{remove: func(_ context.Context, id uuid.UUID) (*domain.Employee, error) {
		if id != emp.ID {
			t.Fatalf("unexpected id %s", id)
		}
		return emp, nil
	}}

	w := doRequest(t, newTestRouter(stub), http.MethodDelete, "/v1/employees/"+emp.ID.String(), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), emp.ID.String()) {
		t.Fatalf("expected deleted snapshot in payload, got %s", w.Body.String())
	}
}

func TestDeleteEmployee_NotFound(t *testing.T) {
	stub := &stubDirectory{remove: func(context.Context, uuid.UUID) (*domain.Employee, error) {
		return nil, domain.NewNotFoundError("employee")
	}}

	w := doRequest(t, newTestRouter(stub), http.MethodDelete, "/v1/employees/"+uuid.NewString(), "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
