package registrationstore_test

import (
	"testing"

	registrationstore "github.com/dalemusser/eventhub/internal/app/store/registrations"
	"github.com/dalemusser/eventhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := registrationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx := t.Context()

	organizer := fixtures.CreateOrganizer(ctx, "organizer")
	student := fixtures.CreateStudent(ctx, "student")
	event := fixtures.CreateEvent(ctx, "Test Event", organizer.ID)

	reg, err := store.Create(ctx, student.ID, event.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, reg.StudentID)
	assert.Equal(t, event.ID, reg.EventID)
	assert.False(t, reg.CreatedAt.IsZero())

	count, err := store.CountForEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestStore_Create_Duplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := registrationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx := t.Context()

	organizer := fixtures.CreateOrganizer(ctx, "organizer")
	student := fixtures.CreateStudent(ctx, "student")
	event := fixtures.CreateEvent(ctx, "Test Event", organizer.ID)

	_, err := store.Create(ctx, student.ID, event.ID)
	require.NoError(t, err)

	// Second attempt loses to the unique index and leaves the count alone.
	_, err = store.Create(ctx, student.ID, event.ID)
	require.ErrorIs(t, err, registrationstore.ErrAlreadyRegistered)

	count, err := store.CountForEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestStore_Create_SameStudentDifferentEvents(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := registrationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx := t.Context()

	organizer := fixtures.CreateOrganizer(ctx, "organizer")
	student := fixtures.CreateStudent(ctx, "student")
	e1 := fixtures.CreateEvent(ctx, "Event One", organizer.ID)
	e2 := fixtures.CreateEvent(ctx, "Event Two", organizer.ID)

	_, err := store.Create(ctx, student.ID, e1.ID)
	require.NoError(t, err)
	_, err = store.Create(ctx, student.ID, e2.ID)
	require.NoError(t, err)
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := registrationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx := t.Context()

	organizer := fixtures.CreateOrganizer(ctx, "organizer")
	student := fixtures.CreateStudent(ctx, "student")
	event := fixtures.CreateEvent(ctx, "Test Event", organizer.ID)

	_, err := store.Create(ctx, student.ID, event.ID)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, student.ID, event.ID))

	count, err := store.CountForEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	// Unregistering again reports the missing registration.
	err = store.Delete(ctx, student.ID, event.ID)
	require.ErrorIs(t, err, registrationstore.ErrNotRegistered)
}

func TestStore_IsRegistered(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := registrationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx := t.Context()

	organizer := fixtures.CreateOrganizer(ctx, "organizer")
	student := fixtures.CreateStudent(ctx, "student")
	event := fixtures.CreateEvent(ctx, "Test Event", organizer.ID)

	ok, err := store.IsRegistered(ctx, student.ID, event.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	fixtures.CreateRegistration(ctx, student.ID, event.ID)

	ok, err = store.IsRegistered(ctx, student.ID, event.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStore_ListForStudent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := registrationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx := t.Context()

	organizer := fixtures.CreateOrganizer(ctx, "organizer")
	student := fixtures.CreateStudent(ctx, "student")
	other := fixtures.CreateStudent(ctx, "other")
	e1 := fixtures.CreateEvent(ctx, "Event One", organizer.ID)
	e2 := fixtures.CreateEvent(ctx, "Event Two", organizer.ID)

	fixtures.CreateRegistration(ctx, student.ID, e1.ID)
	fixtures.CreateRegistration(ctx, student.ID, e2.ID)
	fixtures.CreateRegistration(ctx, other.ID, e1.ID)

	regs, err := store.ListForStudent(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, regs, 2)

	// Newest first, with the event eagerly loaded.
	assert.Equal(t, "Event Two", regs[0].Event.Title)
	assert.Equal(t, "Event One", regs[1].Event.Title)
	for _, reg := range regs {
		assert.Equal(t, student.ID, reg.StudentID)
	}
}

func TestStore_ListForEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := registrationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx := t.Context()

	organizer := fixtures.CreateOrganizer(ctx, "organizer")
	s1 := fixtures.CreateStudent(ctx, "student1")
	s2 := fixtures.CreateStudent(ctx, "student2")
	event := fixtures.CreateEvent(ctx, "Test Event", organizer.ID)
	unrelated := fixtures.CreateEvent(ctx, "Other Event", organizer.ID)

	fixtures.CreateRegistration(ctx, s1.ID, event.ID)
	fixtures.CreateRegistration(ctx, s2.ID, event.ID)
	fixtures.CreateRegistration(ctx, s1.ID, unrelated.ID)

	regs, err := store.ListForEvent(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, regs, 2)

	// Students come eagerly loaded, newest registration first.
	assert.Equal(t, "student2", regs[0].Student.Username)
	assert.Equal(t, "student1", regs[1].Student.Username)
}

func TestStore_CountsByEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := registrationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx := t.Context()

	organizer := fixtures.CreateOrganizer(ctx, "organizer")
	s1 := fixtures.CreateStudent(ctx, "student1")
	s2 := fixtures.CreateStudent(ctx, "student2")
	e1 := fixtures.CreateEvent(ctx, "Event One", organizer.ID)
	e2 := fixtures.CreateEvent(ctx, "Event Two", organizer.ID)
	empty := fixtures.CreateEvent(ctx, "Empty Event", organizer.ID)

	fixtures.CreateRegistration(ctx, s1.ID, e1.ID)
	fixtures.CreateRegistration(ctx, s2.ID, e1.ID)
	fixtures.CreateRegistration(ctx, s1.ID, e2.ID)

	counts, err := store.CountsByEvent(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 2, counts[e1.ID])
	assert.EqualValues(t, 1, counts[e2.ID])
	_, present := counts[empty.ID]
	assert.False(t, present, "events without registrations are absent from the map")
}
