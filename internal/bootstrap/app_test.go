package bootstrap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/config"
)

func devApp(t *testing.T) *App {
	t.Helper()
	app, err := Build(config.Config{
		Env:               "dev",
		ObjectStoreType:   "local",
		LocalStoreDir:     t.TempDir(),
		CORSAllowOrigin:   []string{"*"},
		MaxCurriculoBytes: 5 << 20,
		AnalysisInput:     "pdf",
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return app
}

func doJSON(app *App, method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, app *App, email string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":"senha-segura","nome":"Teste"}`, email)
	w := doJSON(app, http.MethodPost, "/api/v1/auth/register", "", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: status %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("register response missing token: %s", w.Body.String())
	}
	return resp.Token
}

func uploadCurriculo(t *testing.T, app *App, token, fileName, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	fw.Write([]byte(content))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/curriculos", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	app := devApp(t)

	w := doJSON(app, http.MethodGet, "/api/v1/health", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	app := devApp(t)

	for _, path := range []string{"/api/v1/me", "/api/v1/perfil", "/api/v1/curriculos", "/api/v1/analises"} {
		w := doJSON(app, http.MethodGet, path, "", "")
		if path == "/api/v1/analises" {
			w = doJSON(app, http.MethodPost, path, "", `{"filePath":"x"}`)
		}
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status %d", path, w.Code)
		}
	}
}

func TestRegisterLoginAndMe(t *testing.T) {
	app := devApp(t)
	token := registerUser(t, app, "a@b.com")

	w := doJSON(app, http.MethodGet, "/api/v1/me", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("me: status %d, body %s", w.Code, w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("a@b.com")) {
		t.Fatalf("me response missing email: %s", w.Body.String())
	}

	w = doJSON(app, http.MethodPost, "/api/v1/auth/login", "", `{"email":"a@b.com","password":"senha-segura"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d, body %s", w.Code, w.Body.String())
	}
}

func TestProfileLifecycle(t *testing.T) {
	app := devApp(t)
	token := registerUser(t, app, "a@b.com")

	w := doJSON(app, http.MethodGet, "/api/v1/perfil", token, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("empty profile: status %d", w.Code)
	}

	w = doJSON(app, http.MethodPut, "/api/v1/perfil", token, `{"nome":"Maria","bairro":"Pecém","interesses":["logística"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("save profile: status %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(app, http.MethodGet, "/api/v1/perfil", token, "")
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte("Pecém")) {
		t.Fatalf("get profile: status %d, body %s", w.Code, w.Body.String())
	}
}

func TestCurriculoLifecycle(t *testing.T) {
	app := devApp(t)
	token := registerUser(t, app, "a@b.com")

	w := uploadCurriculo(t, app, token, "cv.pdf", "%PDF-1.4 body")
	if w.Code != http.StatusCreated {
		t.Fatalf("upload: status %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(app, http.MethodGet, "/api/v1/curriculos", token, "")
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte("cv.pdf")) {
		t.Fatalf("current: status %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(app, http.MethodDelete, "/api/v1/curriculos", token, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", w.Code)
	}

	w = doJSON(app, http.MethodGet, "/api/v1/curriculos", token, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("after delete: status %d", w.Code)
	}
}

func TestUploadRejectsNonPDF(t *testing.T) {
	app := devApp(t)
	token := registerUser(t, app, "a@b.com")

	w := uploadCurriculo(t, app, token, "cv.txt", "plain text")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
}

func TestUploadRejectsDeclaredNonPDFType(t *testing.T) {
	app := devApp(t)
	token := registerUser(t, app, "a@b.com")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="cv.pdf"`)
	header.Set("Content-Type", "image/jpeg")
	fw, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	fw.Write([]byte{0xFF, 0xD8, 0xFF, 0xE0})
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/curriculos", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
}

func TestAdminRoutesNeedAdminRole(t *testing.T) {
	app := devApp(t)
	token := registerUser(t, app, "a@b.com")

	w := doJSON(app, http.MethodPost, "/api/v1/admin/vagas", token, `{"titulo":"x","empresa":"y","descricao":"z"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
}

func TestPublicListingsAreOpen(t *testing.T) {
	app := devApp(t)

	for _, path := range []string{"/api/v1/noticias", "/api/v1/vagas", "/api/v1/trilhas"} {
		w := doJSON(app, http.MethodGet, path, "", "")
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status %d", path, w.Code)
		}
	}
}
