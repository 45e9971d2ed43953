package food

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/chungjai123/food-bot/internal/domain"
	"github.com/chungjai123/food-bot/internal/ports/persistence"
)

type sentMessage struct {
	ChatID   int64
	ReplyTo  int64
	Text     string
	Keyboard map[string]interface{}
}

type answeredCallback struct {
	ID   string
	Text string
}

type fakeTelegram struct {
	mu       sync.Mutex
	sent     []sentMessage
	edits    []sentMessage
	answers  []answeredCallback
	photo    []byte
	fileErr  error
	replyErr error
}

func (f *fakeTelegram) SendMessage(_ context.Context, chatID int64, text string) error {
	return f.ReplyToMessage(context.Background(), chatID, 0, text, nil)
}

func (f *fakeTelegram) SendMessageWithKeyboard(_ context.Context, chatID int64, text string, keyboard map[string]interface{}) error {
	return f.ReplyToMessage(context.Background(), chatID, 0, text, keyboard)
}

func (f *fakeTelegram) ReplyToMessage(_ context.Context, chatID, messageID int64, text string, keyboard map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.replyErr != nil {
		return f.replyErr
	}
	f.sent = append(f.sent, sentMessage{ChatID: chatID, ReplyTo: messageID, Text: text, Keyboard: keyboard})
	return nil
}

func (f *fakeTelegram) EditMessageText(_ context.Context, chatID, messageID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, sentMessage{ChatID: chatID, ReplyTo: messageID, Text: text})
	return nil
}

func (f *fakeTelegram) AnswerCallbackQuery(_ context.Context, callbackID string, text string, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers = append(f.answers, answeredCallback{ID: callbackID, Text: text})
	return nil
}

func (f *fakeTelegram) GetFile(_ context.Context, fileID string) (*domain.File, error) {
	if f.fileErr != nil {
		return nil, f.fileErr
	}
	return &domain.File{FileID: fileID, FilePath: "photos/" + fileID + ".jpg"}, nil
}

func (f *fakeTelegram) DownloadFile(context.Context, string) ([]byte, error) {
	return f.photo, nil
}

func (f *fakeTelegram) lastSent() sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return sentMessage{}
	}
	return f.sent[len(f.sent)-1]
}

func (f *fakeTelegram) lastEdit() sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.edits) == 0 {
		return sentMessage{}
	}
	return f.edits[len(f.edits)-1]
}

func (f *fakeTelegram) lastAnswer() answeredCallback {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.answers) == 0 {
		return answeredCallback{}
	}
	return f.answers[len(f.answers)-1]
}

type fakeVision struct {
	mu     sync.Mutex
	result string
	err    error
	calls  int
}

func (f *fakeVision) AnalyzeImage(context.Context, []byte, string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.result, f.err
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[int64]*domain.UserProfile
	err      error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[int64]*domain.UserProfile)}
}

func (f *fakeProfileRepo) Upsert(_ context.Context, p *domain.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	cp := *p
	f.profiles[p.UserID] = &cp
	return nil
}

func (f *fakeProfileRepo) Get(_ context.Context, userID int64) (*domain.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) Delete(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	delete(f.profiles, userID)
	return nil
}

func (f *fakeProfileRepo) WithTransaction(ctx context.Context, fn func(context.Context, persistence.Transaction) error) error {
	return fn(ctx, nil)
}

func (f *fakeProfileRepo) DeleteTx(ctx context.Context, _ persistence.Transaction, userID int64) error {
	return f.Delete(ctx, userID)
}

type fakeHistoryRepo struct {
	mu        sync.Mutex
	records   []domain.HistoryRecord
	appendErr error
	nextID    int64
}

func (f *fakeHistoryRepo) Append(_ context.Context, record *domain.HistoryRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.nextID++
	record.ID = f.nextID
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeHistoryRepo) Recent(_ context.Context, userID int64, limit int) ([]domain.HistoryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.HistoryRecord, 0)
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		if f.records[i].UserID == userID {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}

func (f *fakeHistoryRepo) TotalCalories(_ context.Context, userID int64) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total float64
	for _, r := range f.records {
		if r.UserID == userID {
			total += r.Calories
		}
	}
	return total, nil
}

func (f *fakeHistoryRepo) DeleteByUser(_ context.Context, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.records[:0]
	var deleted int64
	for _, r := range f.records {
		if r.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	f.records = kept
	return deleted, nil
}

func (f *fakeHistoryRepo) DeleteByUserTx(ctx context.Context, _ persistence.Transaction, userID int64) (int64, error) {
	return f.DeleteByUser(ctx, userID)
}

func (f *fakeHistoryRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

type fakeEvents struct {
	mu     sync.Mutex
	events []*domain.AnalysisSavedEvent
}

func (f *fakeEvents) PublishAnalysisSaved(_ context.Context, event *domain.AnalysisSavedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

type fakeAlerter struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakeAlerter) SendAlert(_ context.Context, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
	return nil
}

type fakeArchive struct {
	mu   sync.Mutex
	keys []uuid.UUID
	err  error
}

func (f *fakeArchive) PutPhoto(_ context.Context, _ int64, analysisID uuid.UUID, _ []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, analysisID)
	return "photos/" + analysisID.String() + ".jpg", nil
}

var errStoreDown = errors.New("database is locked")
