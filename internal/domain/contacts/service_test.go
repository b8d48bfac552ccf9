package contacts

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cropcraft/server/internal/validation"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	mu    sync.Mutex
	items []Contact
}

func (m *memoryRepo) Create(_ context.Context, contact Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, contact)
	return nil
}

// List deliberately returns insertion order; the service owns the ordering.
func (m *memoryRepo) List(_ context.Context) ([]Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Contact(nil), m.items...), nil
}

type recordingNotifier struct {
	got []Contact
	err error
}

func (n *recordingNotifier) NotifyContact(_ context.Context, contact Contact) error {
	n.got = append(n.got, contact)
	return n.err
}

func validInput() Input {
	return Input{Name: "Jane", Email: "jane@example.com", Message: "Do you ship seeds?"}
}

func TestCreateRequiresAllFields(t *testing.T) {
	svc := NewService(&memoryRepo{}, nil, zerolog.Nop())

	for _, input := range []Input{
		{Email: "jane@example.com", Message: "hi"},
		{Name: "Jane", Message: "hi"},
		{Name: "Jane", Email: "jane@example.com"},
		{Name: "<b></b>", Email: "jane@example.com", Message: "hi"},
	} {
		_, err := svc.Create(context.Background(), input)
		var vErr validation.Error
		require.True(t, errors.As(err, &vErr), "%+v", input)
		require.Equal(t, "All fields are required", vErr.Message)
	}
}

func TestCreateRejectsBadEmail(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo, nil, zerolog.Nop())

	for _, email := range []string{"jane", "jane@example", "jane.example.com", "jane@example.online", "jane@@example.com"} {
		input := validInput()
		input.Email = email

		_, err := svc.Create(context.Background(), input)
		var vErr validation.Error
		require.True(t, errors.As(err, &vErr), email)
		require.Equal(t, "Please enter a valid email", vErr.Message)
	}
	require.Empty(t, repo.items)
}

func TestCreateStripsMarkupAndStamps(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo, nil, zerolog.Nop())
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	input := validInput()
	input.Message = `Hello <script>alert(1)</script><b>there</b>`

	contact, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, "Hello there", contact.Message)
	require.Equal(t, fixed, contact.CreatedAt)
	require.Len(t, repo.items, 1)
}

func TestListNewestFirst(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo, nil, zerolog.Nop())
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	for i, name := range []string{"first", "second", "third"} {
		svc.now = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }
		input := validInput()
		input.Name = name
		_, err := svc.Create(ctx, input)
		require.NoError(t, err)
	}

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, "third", items[0].Name)
	require.Equal(t, "second", items[1].Name)
	require.Equal(t, "first", items[2].Name)
}

func TestNotifierFailureDoesNotFailCreate(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	svc := NewService(&memoryRepo{}, notifier, zerolog.Nop())

	contact, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	require.NoError(t, svc.Drain(context.Background()))
	require.Len(t, notifier.got, 1)
	require.Equal(t, contact.ID, notifier.got[0].ID)
}

type blockingNotifier struct {
	release chan struct{}
	ctxErr  chan error
}

func (n *blockingNotifier) NotifyContact(ctx context.Context, _ Contact) error {
	<-n.release
	n.ctxErr <- ctx.Err()
	return nil
}

func TestCreateDoesNotWaitForNotifier(t *testing.T) {
	notifier := &blockingNotifier{release: make(chan struct{}), ctxErr: make(chan error, 1)}
	repo := &memoryRepo{}
	svc := NewService(repo, notifier, zerolog.Nop())

	reqCtx, cancelReq := context.WithCancel(context.Background())
	_, err := svc.Create(reqCtx, validInput())
	require.NoError(t, err)
	cancelReq()

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	waitCtx, cancelWait := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelWait()
	require.ErrorIs(t, svc.Drain(waitCtx), context.DeadlineExceeded)

	close(notifier.release)
	require.NoError(t, svc.Drain(context.Background()))
	require.NoError(t, <-notifier.ctxErr, "notification must outlive the request context")
}
