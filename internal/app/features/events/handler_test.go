package events_test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	uierrors "github.com/dalemusser/eventhub/internal/app/features/errors"
	"github.com/dalemusser/eventhub/internal/app/features/events"
	eventstore "github.com/dalemusser/eventhub/internal/app/store/events"
	regstore "github.com/dalemusser/eventhub/internal/app/store/registrations"
	"github.com/dalemusser/eventhub/internal/domain/models"
	"github.com/dalemusser/eventhub/internal/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type env struct {
	handler  *events.Handler
	fixtures *testutil.Fixtures
	db       *gorm.DB
}

func newTestEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)

	handler := events.NewHandler(eventstore.New(db), regstore.New(db), errLog, logger)
	return &env{
		handler:  handler,
		fixtures: testutil.NewFixtures(t, db),
		db:       db,
	}
}

func (e *env) registrationCount(t *testing.T, eventID uint) int64 {
	t.Helper()
	var n int64
	err := e.db.Model(&models.Registration{}).Where("event_id = ?", eventID).Count(&n).Error
	if err != nil {
		t.Fatalf("count registrations: %v", err)
	}
	return n
}

func eventReq(method string, eventID uint, suffix string, user *models.User) *http.Request {
	target := fmt.Sprintf("/event/%d%s", eventID, suffix)
	r := testutil.NewRequest(method, target)
	r = testutil.WithChiURLParam(r, "id", fmt.Sprint(eventID))
	if user != nil {
		r = testutil.WithUser(r, *user)
	}
	return r
}

func TestHandleRegister_Student(t *testing.T) {
	e := newTestEnv(t)
	ctx := t.Context()
	organizer := e.fixtures.CreateOrganizer(ctx, "org1")
	student := e.fixtures.CreateStudent(ctx, "stud1")
	ev := e.fixtures.CreateEvent(ctx, "Robotics Workshop", organizer.ID)

	req := eventReq(http.MethodPost, ev.ID, "/register", &student)
	rec := testutil.NewRecorder()

	e.handler.HandleRegister(rec, req)

	rec.AssertRedirect(t, fmt.Sprintf("/event/%d", ev.ID))
	if n := e.registrationCount(t, ev.ID); n != 1 {
		t.Errorf("registration count: got %d, want 1", n)
	}
}

func TestHandleRegister_DuplicateLeavesOneRow(t *testing.T) {
	e := newTestEnv(t)
	ctx := t.Context()
	organizer := e.fixtures.CreateOrganizer(ctx, "org1")
	student := e.fixtures.CreateStudent(ctx, "stud1")
	ev := e.fixtures.CreateEvent(ctx, "Robotics Workshop", organizer.ID)
	e.fixtures.CreateRegistration(ctx, student.ID, ev.ID)

	req := eventReq(http.MethodPost, ev.ID, "/register", &student)
	rec := testutil.NewRecorder()

	e.handler.HandleRegister(rec, req)

	// A double submit redirects back with a warning instead of erroring.
	rec.AssertRedirect(t, fmt.Sprintf("/event/%d", ev.ID))
	if n := e.registrationCount(t, ev.ID); n != 1 {
		t.Errorf("registration count: got %d, want 1", n)
	}
}

func TestHandleRegister_OrganizerDenied(t *testing.T) {
	e := newTestEnv(t)
	ctx := t.Context()
	organizer := e.fixtures.CreateOrganizer(ctx, "org1")
	other := e.fixtures.CreateOrganizer(ctx, "org2")
	ev := e.fixtures.CreateEvent(ctx, "Robotics Workshop", organizer.ID)

	req := eventReq(http.MethodPost, ev.ID, "/register", &other)
	rec := testutil.NewRecorder()

	e.handler.HandleRegister(rec, req)

	rec.AssertRedirect(t, fmt.Sprintf("/event/%d", ev.ID))
	if n := e.registrationCount(t, ev.ID); n != 0 {
		t.Errorf("registration count: got %d, want 0", n)
	}
}

func TestHandleUnregister(t *testing.T) {
	e := newTestEnv(t)
	ctx := t.Context()
	organizer := e.fixtures.CreateOrganizer(ctx, "org1")
	student := e.fixtures.CreateStudent(ctx, "stud1")
	ev := e.fixtures.CreateEvent(ctx, "Robotics Workshop", organizer.ID)
	e.fixtures.CreateRegistration(ctx, student.ID, ev.ID)

	req := eventReq(http.MethodPost, ev.ID, "/unregister", &student)
	rec := testutil.NewRecorder()

	e.handler.HandleUnregister(rec, req)

	rec.AssertRedirect(t, fmt.Sprintf("/event/%d", ev.ID))
	if n := e.registrationCount(t, ev.ID); n != 0 {
		t.Errorf("registration count: got %d, want 0", n)
	}
}

func TestHandleUnregister_NotRegistered(t *testing.T) {
	e := newTestEnv(t)
	ctx := t.Context()
	organizer := e.fixtures.CreateOrganizer(ctx, "org1")
	student := e.fixtures.CreateStudent(ctx, "stud1")
	ev := e.fixtures.CreateEvent(ctx, "Robotics Workshop", organizer.ID)

	req := eventReq(http.MethodPost, ev.ID, "/unregister", &student)
	rec := testutil.NewRecorder()

	e.handler.HandleUnregister(rec, req)

	// Redirects back with an error flash rather than failing.
	rec.AssertRedirect(t, fmt.Sprintf("/event/%d", ev.ID))
}

func TestHandleCreate_Organizer(t *testing.T) {
	e := newTestEnv(t)
	ctx := t.Context()
	organizer := e.fixtures.CreateOrganizer(ctx, "org1")

	form := url.Values{
		"title":       {"Open Mic Night"},
		"description": {"<p>Music and poetry.</p><script>alert(1)</script>"},
		"date":        {"2026-10-01T19:30"},
		"location":    {"Coffee House"},
	}
	req := testutil.WithUser(testutil.NewFormRequest("/event/create", form), organizer)
	rec := testutil.NewRecorder()

	e.handler.HandleCreate(rec, req)

	var ev models.Event
	if err := e.db.Where("title = ?", "Open Mic Night").First(&ev).Error; err != nil {
		t.Fatalf("expected event to exist: %v", err)
	}

	rec.AssertRedirect(t, fmt.Sprintf("/event/%d", ev.ID))

	if ev.OrganizerID != organizer.ID {
		t.Errorf("organizer: got %d, want %d", ev.OrganizerID, organizer.ID)
	}
	if got := ev.Description; got != "<p>Music and poetry.</p>" {
		t.Errorf("description not sanitized: got %q", got)
	}
	if got := ev.Date.Format("2006-01-02T15:04"); got != "2026-10-01T19:30" {
		t.Errorf("date: got %q", got)
	}
}

func TestHandleCreate_StudentDenied(t *testing.T) {
	e := newTestEnv(t)
	ctx := t.Context()
	student := e.fixtures.CreateStudent(ctx, "stud1")

	form := url.Values{
		"title":       {"Unsanctioned Party"},
		"description": {"nope"},
		"date":        {"2026-10-01T19:30"},
		"location":    {"Anywhere"},
	}
	req := testutil.WithUser(testutil.NewFormRequest("/event/create", form), student)
	rec := testutil.NewRecorder()

	e.handler.HandleCreate(rec, req)

	rec.AssertRedirect(t, "/")

	var n int64
	e.db.Model(&models.Event{}).Count(&n)
	if n != 0 {
		t.Errorf("event count: got %d, want 0", n)
	}
}

func TestHandleCreate_MissingTitle(t *testing.T) {
	e := newTestEnv(t)
	ctx := t.Context()
	organizer := e.fixtures.CreateOrganizer(ctx, "org1")

	form := url.Values{
		"title":       {""},
		"description": {"desc"},
		"date":        {"2026-10-01T19:30"},
		"location":    {"Somewhere"},
	}
	req := testutil.WithUser(testutil.NewFormRequest("/event/create", form), organizer)
	rec := testutil.NewRecorder()

	// The validation failure re-renders the form, which panics without a
	// booted template engine.
	func() {
		defer func() { _ = recover() }()
		e.handler.HandleCreate(rec, req)
	}()

	var n int64
	e.db.Model(&models.Event{}).Count(&n)
	if n != 0 {
		t.Errorf("event count: got %d, want 0", n)
	}
}

func TestHandleEdit_UpdatesFieldsKeepsOrganizer(t *testing.T) {
	e := newTestEnv(t)
	ctx := t.Context()
	organizer := e.fixtures.CreateOrganizer(ctx, "org1")
	ev := e.fixtures.CreateEvent(ctx, "Old Title", organizer.ID)

	form := url.Values{
		"title":       {"New Title"},
		"description": {"Updated description"},
		"date":        {"2026-11-05T18:00"},
		"location":    {"New Location"},
	}
	req := testutil.NewFormRequest(fmt.Sprintf("/event/%d/edit", ev.ID), form)
	req = testutil.WithChiURLParam(req, "id", fmt.Sprint(ev.ID))
	req = testutil.WithUser(req, organizer)
	rec := testutil.NewRecorder()

	e.handler.HandleEdit(rec, req)

	rec.AssertRedirect(t, fmt.Sprintf("/event/%d", ev.ID))

	var got models.Event
	if err := e.db.First(&got, ev.ID).Error; err != nil {
		t.Fatalf("reload event: %v", err)
	}
	if got.Title != "New Title" || got.Location != "New Location" {
		t.Errorf("fields not updated: %+v", got)
	}
	if got.OrganizerID != organizer.ID {
		t.Errorf("organizer changed: got %d, want %d", got.OrganizerID, organizer.ID)
	}
}

func TestHandleEdit_OtherOrganizerDenied(t *testing.T) {
	e := newTestEnv(t)
	ctx := t.Context()
	owner := e.fixtures.CreateOrganizer(ctx, "owner")
	intruder := e.fixtures.CreateOrganizer(ctx, "intruder")
	ev := e.fixtures.CreateEvent(ctx, "Protected Event", owner.ID)

	form := url.Values{
		"title":       {"Hijacked"},
		"description": {"x"},
		"date":        {"2026-11-05T18:00"},
		"location":    {"x"},
	}
	req := testutil.NewFormRequest(fmt.Sprintf("/event/%d/edit", ev.ID), form)
	req = testutil.WithChiURLParam(req, "id", fmt.Sprint(ev.ID))
	req = testutil.WithUser(req, intruder)
	rec := testutil.NewRecorder()

	e.handler.HandleEdit(rec, req)

	rec.AssertRedirect(t, fmt.Sprintf("/event/%d", ev.ID))

	var got models.Event
	e.db.First(&got, ev.ID)
	if got.Title != "Protected Event" {
		t.Errorf("title changed by non-owner: %q", got.Title)
	}
}

func TestHandleDelete_CascadesRegistrations(t *testing.T) {
	e := newTestEnv(t)
	ctx := t.Context()
	organizer := e.fixtures.CreateOrganizer(ctx, "org1")
	s1 := e.fixtures.CreateStudent(ctx, "stud1")
	s2 := e.fixtures.CreateStudent(ctx, "stud2")
	ev := e.fixtures.CreateEvent(ctx, "Doomed Event", organizer.ID)
	e.fixtures.CreateRegistration(ctx, s1.ID, ev.ID)
	e.fixtures.CreateRegistration(ctx, s2.ID, ev.ID)

	req := eventReq(http.MethodPost, ev.ID, "/delete", &organizer)
	rec := testutil.NewRecorder()

	e.handler.HandleDelete(rec, req)

	rec.AssertRedirect(t, "/dashboard")

	var events, regs int64
	e.db.Model(&models.Event{}).Count(&events)
	e.db.Model(&models.Registration{}).Count(&regs)
	if events != 0 || regs != 0 {
		t.Errorf("after delete: %d events, %d registrations; want 0, 0", events, regs)
	}
}

func TestHandleDelete_AdminCanDeleteAnyEvent(t *testing.T) {
	e := newTestEnv(t)
	ctx := t.Context()
	organizer := e.fixtures.CreateOrganizer(ctx, "org1")
	admin := e.fixtures.CreateAdmin(ctx, "root")
	ev := e.fixtures.CreateEvent(ctx, "Any Event", organizer.ID)

	req := eventReq(http.MethodPost, ev.ID, "/delete", &admin)
	rec := testutil.NewRecorder()

	e.handler.HandleDelete(rec, req)

	rec.AssertRedirect(t, "/dashboard")
}

func TestHandleDelete_OtherOrganizerDenied(t *testing.T) {
	e := newTestEnv(t)
	ctx := t.Context()
	owner := e.fixtures.CreateOrganizer(ctx, "owner")
	intruder := e.fixtures.CreateOrganizer(ctx, "intruder")
	ev := e.fixtures.CreateEvent(ctx, "Protected Event", owner.ID)

	req := eventReq(http.MethodPost, ev.ID, "/delete", &intruder)
	rec := testutil.NewRecorder()

	e.handler.HandleDelete(rec, req)

	rec.AssertRedirect(t, fmt.Sprintf("/event/%d", ev.ID))

	var n int64
	e.db.Model(&models.Event{}).Count(&n)
	if n != 1 {
		t.Errorf("event count: got %d, want 1", n)
	}
}

func TestServeDetail_NotFound(t *testing.T) {
	e := newTestEnv(t)

	req := eventReq(http.MethodGet, 9999, "", nil)
	rec := testutil.NewRecorder()

	// The 404 status is written before the template render, which panics
	// without a booted engine.
	func() {
		defer func() { _ = recover() }()
		e.handler.ServeDetail(rec, req)
	}()

	rec.AssertStatus(t, http.StatusNotFound)
}
