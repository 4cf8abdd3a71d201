package vintages_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/oakbarrel/cellar/internal/app/features/vintages"
	"github.com/oakbarrel/cellar/internal/domain/models"
	"github.com/oakbarrel/cellar/internal/testutil"
)

func setup(t *testing.T) (http.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := vintages.NewHandler(db, zap.NewNop())
	return vintages.Routes(h), testutil.NewFixtures(t, db)
}

func TestHandleCreate_DuplicateYear(t *testing.T) {
	router, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	winery := fx.CreateWinery(ctx, "Dup Vintage Winery")
	wine := fx.CreateWine(ctx, "Dup Vintage Wine", winery.ID)
	admin := testutil.AdminUser()

	body := fmt.Sprintf(`{"wine":"%s","year":2018}`, wine.ID.Hex())
	req := testutil.NewAuthenticatedJSONRequest(http.MethodPost, "/", strings.NewReader(body), admin)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first create: got %d (%s)", rec.Code, rec.Body.String())
	}

	// Same (wine, year) again → 400, exactly one document remains.
	req = testutil.NewAuthenticatedJSONRequest(http.MethodPost, "/", strings.NewReader(body), admin)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate create: got %d, want 400", rec.Code)
	}
	n, _ := fx.DB().Collection("vintages").CountDocuments(ctx,
		map[string]any{"wine_id": wine.ID, "year": 2018})
	if n != 1 {
		t.Errorf("documents for the pair: got %d, want 1", n)
	}
}

func TestHandleCreate_WineMustExist(t *testing.T) {
	router, _ := setup(t)

	body := fmt.Sprintf(`{"wine":"%s","year":2018}`, primitive.NewObjectID().Hex())
	req := testutil.NewAuthenticatedJSONRequest(http.MethodPost, "/", strings.NewReader(body), testutil.EditorUser())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown wine: got %d, want 404", rec.Code)
	}
}

func TestHandleCreate_YearRange(t *testing.T) {
	router, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	winery := fx.CreateWinery(ctx, "Year Range Winery")
	wine := fx.CreateWine(ctx, "Year Range Wine", winery.ID)

	for _, year := range []int{1899, models.MaxVintageYear() + 1} {
		body := fmt.Sprintf(`{"wine":"%s","year":%d}`, wine.ID.Hex(), year)
		req := testutil.NewAuthenticatedJSONRequest(http.MethodPost, "/", strings.NewReader(body), testutil.AdminUser())
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("year %d: got %d, want 400", year, rec.Code)
		}
	}
}

func TestServeList_SortsByYearDescending(t *testing.T) {
	router, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	winery := fx.CreateWinery(ctx, "Sort Winery")
	wine := fx.CreateWine(ctx, "Sort Wine", winery.ID)
	fx.CreateVintage(ctx, wine.ID, 2015)
	fx.CreateVintage(ctx, wine.ID, 2021)
	fx.CreateVintage(ctx, wine.ID, 2018)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/?wine="+wine.ID.Hex(), testutil.ViewerUser())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp struct {
		Data []struct {
			Year int `json:"year"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(resp.Data) != 3 {
		t.Fatalf("got %d vintages", len(resp.Data))
	}
	for i, want := range []int{2021, 2018, 2015} {
		if resp.Data[i].Year != want {
			t.Errorf("position %d: got %d, want %d", i, resp.Data[i].Year, want)
		}
	}
}

func TestServeView_PopulatesWineAndWinery(t *testing.T) {
	router, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	winery := fx.CreateWinery(ctx, "Deep Winery")
	wine := fx.CreateWine(ctx, "Deep Wine", winery.ID)
	vintage := fx.CreateVintage(ctx, wine.ID, 2019)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/"+vintage.ID.Hex(), testutil.ViewerUser())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var resp struct {
		Data struct {
			Year int `json:"year"`
			Wine struct {
				Name   string `json:"name"`
				Winery struct {
					Name string `json:"name"`
				} `json:"winery"`
			} `json:"wine"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Data.Wine.Name != "Deep Wine" {
		t.Errorf("wine not populated: %+v", resp.Data)
	}
	if resp.Data.Wine.Winery.Name != "Deep Winery" {
		t.Errorf("winery not populated: %+v", resp.Data)
	}
}

func TestAssets_SetAndClear(t *testing.T) {
	router, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	winery := fx.CreateWinery(ctx, "Asset Winery")
	wine := fx.CreateWine(ctx, "Asset Wine", winery.ID)
	vintage := fx.CreateVintage(ctx, wine.ID, 2020)
	admin := testutil.AdminUser()

	// Unknown slot name → 400.
	req := testutil.NewAuthenticatedJSONRequest(http.MethodPut,
		"/"+vintage.ID.Hex()+"/assets/backLabel",
		strings.NewReader(`{"relativePath":"images/x.jpg"}`), admin)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown slot: got %d, want 400", rec.Code)
	}

	// Set the bottle image.
	req = testutil.NewAuthenticatedJSONRequest(http.MethodPut,
		"/"+vintage.ID.Hex()+"/assets/bottleImage",
		strings.NewReader(`{"filename":"abc.jpg","originalName":"bottle.jpg","relativePath":"images/abc.jpg","mimetype":"image/jpeg","size":1024}`),
		admin)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("set asset: got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data struct {
			Assets struct {
				BottleImage struct {
					RelativePath string `json:"relativePath"`
					UploadedAt   string `json:"uploadedAt"`
				} `json:"bottleImage"`
			} `json:"assets"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Data.Assets.BottleImage.RelativePath != "images/abc.jpg" {
		t.Errorf("asset path: %+v", resp.Data.Assets)
	}
	if resp.Data.Assets.BottleImage.UploadedAt == "" {
		t.Error("uploadedAt not stamped")
	}

	// Missing relativePath → 400.
	req = testutil.NewAuthenticatedJSONRequest(http.MethodPut,
		"/"+vintage.ID.Hex()+"/assets/labelImage",
		strings.NewReader(`{"filename":"no-path.jpg"}`), admin)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing path: got %d, want 400", rec.Code)
	}

	// Clear the slot.
	req = testutil.NewAuthenticatedRequest(http.MethodDelete,
		"/"+vintage.ID.Hex()+"/assets/bottleImage", admin)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear asset: got %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Data.Assets.BottleImage.RelativePath != "" {
		t.Errorf("slot not cleared: %+v", resp.Data.Assets)
	}
}

func TestHandleUpdate_YearMoveConflicts(t *testing.T) {
	router, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	winery := fx.CreateWinery(ctx, "Move Winery")
	wine := fx.CreateWine(ctx, "Move Wine", winery.ID)
	fx.CreateVintage(ctx, wine.ID, 2017)
	vintage := fx.CreateVintage(ctx, wine.ID, 2018)

	// Moving onto an occupied year → 400.
	req := testutil.NewAuthenticatedJSONRequest(http.MethodPut, "/"+vintage.ID.Hex(),
		strings.NewReader(`{"year":2017}`), testutil.AdminUser())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("occupied year: got %d, want 400", rec.Code)
	}

	// Re-submitting the current year is not a conflict.
	req = testutil.NewAuthenticatedJSONRequest(http.MethodPut, "/"+vintage.ID.Hex(),
		strings.NewReader(`{"year":2018,"notes":"still fine"}`), testutil.AdminUser())
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("same year: got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestHandleDelete_Ownership(t *testing.T) {
	router, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "vintage-owner@example.com", models.RoleEditor)
	winery := fx.CreateWinery(ctx, "Owner Winery")
	wine := fx.CreateWine(ctx, "Owner Wine", winery.ID)
	vintage := fx.CreateVintage(ctx, wine.ID, 2016)
	if _, err := fx.DB().Collection("vintages").UpdateByID(ctx, vintage.ID,
		map[string]any{"$set": map[string]any{"created_by": owner.ID}}); err != nil {
		t.Fatalf("stamp owner: %v", err)
	}

	// A different editor is forbidden.
	req := testutil.NewAuthenticatedRequest(http.MethodDelete, "/"+vintage.ID.Hex(), testutil.EditorUser())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("other editor: got %d, want 403", rec.Code)
	}

	// The author may delete.
	req = testutil.NewAuthenticatedRequest(http.MethodDelete, "/"+vintage.ID.Hex(), testutil.AsTokenUser(owner))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("author delete: got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestAnonymousSeesPublishedOnly(t *testing.T) {
	router, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	winery := fx.CreateWinery(ctx, "Anon Winery")
	wine := fx.CreateWine(ctx, "Anon Wine", winery.ID)
	fx.CreateVintage(ctx, wine.ID, 2020)
	draft := fx.CreateVintage(ctx, wine.ID, 2021)
	if _, err := fx.DB().Collection("vintages").UpdateByID(ctx, draft.ID,
		map[string]any{"$set": map[string]any{"status": models.StatusDraft}}); err != nil {
		t.Fatalf("set draft: %v", err)
	}

	req := testutil.NewRequest(http.MethodGet, "/")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp struct {
		Total int64 `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("anonymous total: got %d, want 1", resp.Total)
	}
}
