package journal

import (
	"context"
	"sort"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shubh-37/journal-companion/internal/calendar"
	"github.com/shubh-37/journal-companion/internal/models"
)

// Payload is the content of one write. Venting writes carry Text; conversation
// writes carry the Turns to append.
type Payload struct {
	Text  string
	Turns []models.Turn

	// Append adds Text to an existing venting entry instead of replacing it.
	Append bool
}

// WriteVenting stores text as the venting entry for date, replacing any
// previous text.
func (s *Service) WriteVenting(ctx context.Context, date, text string) (*models.JournalEntry, error) {
	return s.Upsert(ctx, date, models.ModeVenting, Payload{Text: text})
}

// AppendVenting adds text as a new paragraph of the venting entry for date.
func (s *Service) AppendVenting(ctx context.Context, date, text string) (*models.JournalEntry, error) {
	return s.Upsert(ctx, date, models.ModeVenting, Payload{Text: text, Append: true})
}

// Upsert creates or updates the entry for (date, mode). Venting text replaces
// the stored text; conversation turns are appended. The entry is classified
// again on every venting write and whenever the appended turns leave the
// conversation waiting on the user.
func (s *Service) Upsert(ctx context.Context, date string, mode models.Mode, payload Payload) (*models.JournalEntry, error) {
	if err := validatePayload(mode, payload); err != nil {
		return nil, err
	}

	s.entriesMu.Lock()
	defer s.entriesMu.Unlock()

	entries, err := s.loadEntries(ctx)
	if err != nil {
		return nil, err
	}
	date, err = s.resolveWriteDate(entries, date)
	if err != nil {
		return nil, err
	}

	entry, idx := s.findOrCreate(entries, date, mode)
	switch mode {
	case models.ModeVenting:
		if payload.Append && entry.Text != "" {
			entry.Text += "\n\n" + payload.Text
		} else {
			entry.Text = payload.Text
		}
		s.classify(ctx, entry)
	case models.ModeConversation:
		entry.Conversation = append(entry.Conversation, payload.Turns...)
		if models.StateOf(entry) == models.StateAwaitingUser {
			s.classify(ctx, entry)
		}
	}

	if err := s.commit(ctx, entries, idx, entry); err != nil {
		return nil, err
	}
	return entry.Clone(), nil
}

// Get returns the entry for (date, mode), or nil when none exists.
func (s *Service) Get(ctx context.Context, date string, mode models.Mode) (*models.JournalEntry, error) {
	date, _, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	if _, ok := models.ParseMode(string(mode)); !ok {
		return nil, models.Validationf("unknown mode %q", mode)
	}

	s.entriesMu.RLock()
	defer s.entriesMu.RUnlock()

	entries, err := s.loadEntries(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(entries, date, mode); i >= 0 {
		return entries[i].Clone(), nil
	}
	return nil, nil
}

// ForDate returns every entry stored for date, venting before conversation.
func (s *Service) ForDate(ctx context.Context, date string) ([]models.JournalEntry, error) {
	date, _, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}

	s.entriesMu.RLock()
	defer s.entriesMu.RUnlock()

	entries, err := s.loadEntries(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.JournalEntry{}
	for _, mode := range []models.Mode{models.ModeVenting, models.ModeConversation} {
		if i := indexOf(entries, date, mode); i >= 0 {
			out = append(out, *entries[i].Clone())
		}
	}
	return out, nil
}

// Preferred returns the conversation entry for date when there is one, else the
// venting entry, else nil.
func (s *Service) Preferred(ctx context.Context, date string) (*models.JournalEntry, error) {
	set, err := s.ForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	var preferred *models.JournalEntry
	for i := range set {
		if preferred == nil || set[i].Mode == models.ModeConversation {
			preferred = &set[i]
		}
	}
	return preferred, nil
}

// List returns every stored entry in ascending date order.
func (s *Service) List(ctx context.Context) ([]models.JournalEntry, error) {
	s.entriesMu.RLock()
	defer s.entriesMu.RUnlock()

	entries, err := s.loadEntries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.JournalEntry, 0, len(entries))
	for i := range entries {
		out = append(out, *entries[i].Clone())
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// Delete removes the entry for (date, mode), or every entry of date when mode
// is nil. It reports how many entries were removed.
func (s *Service) Delete(ctx context.Context, date string, mode *models.Mode) (int, error) {
	if err := requireDate(date); err != nil {
		return 0, err
	}
	if mode != nil {
		if _, ok := models.ParseMode(string(*mode)); !ok {
			return 0, models.Validationf("unknown mode %q", *mode)
		}
	}

	s.entriesMu.Lock()
	defer s.entriesMu.Unlock()

	entries, err := s.loadEntries(ctx)
	if err != nil {
		return 0, err
	}
	kept := make([]models.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if e.Date == date && (mode == nil || e.Mode == *mode) {
			continue
		}
		kept = append(kept, e)
	}
	removed := len(entries) - len(kept)
	if removed == 0 {
		if mode != nil {
			return 0, models.NotFoundf("no %s entry for %s", *mode, date)
		}
		return 0, models.NotFoundf("no entries for %s", date)
	}
	if err := s.entries.SaveEntries(ctx, kept); err != nil {
		return 0, models.PersistenceError("save entries", err)
	}
	logx.WithContext(ctx).Infow("entries deleted", logx.Field("date", date), logx.Field("removed", removed))
	return removed, nil
}

func validatePayload(mode models.Mode, payload Payload) error {
	switch mode {
	case models.ModeVenting:
		if strings.TrimSpace(payload.Text) == "" {
			return models.Validationf("entry text is required")
		}
	case models.ModeConversation:
		if len(payload.Turns) == 0 {
			return models.Validationf("at least one conversation turn is required")
		}
		for _, turn := range payload.Turns {
			if turn.Role != models.RoleUser && turn.Role != models.RoleAI {
				return models.Validationf("unknown turn role %q", turn.Role)
			}
			if strings.TrimSpace(turn.Content) == "" {
				return models.Validationf("conversation turns must not be empty")
			}
		}
	default:
		return models.Validationf("unknown mode %q", mode)
	}
	return nil
}

// resolveWriteDate defaults and validates the date of a write. A date after
// today is accepted only when an entry already exists for it.
func (s *Service) resolveWriteDate(entries []models.JournalEntry, date string) (string, error) {
	date, _, err := s.resolveDate(date)
	if err != nil {
		return "", err
	}
	if date <= s.Today() {
		return date, nil
	}
	for _, e := range entries {
		if e.Date == date {
			return date, nil
		}
	}
	return "", models.Validationf("cannot create an entry for future date %s", date)
}

func (s *Service) loadEntries(ctx context.Context) ([]models.JournalEntry, error) {
	entries, err := s.entries.LoadEntries(ctx)
	if err != nil {
		return nil, models.PersistenceError("load entries", err)
	}
	return entries, nil
}

// findOrCreate returns a working copy of the (date, mode) entry and its index,
// or a fresh entry and -1.
func (s *Service) findOrCreate(entries []models.JournalEntry, date string, mode models.Mode) (*models.JournalEntry, int) {
	if i := indexOf(entries, date, mode); i >= 0 {
		return entries[i].Clone(), i
	}
	var entry *models.JournalEntry
	if mode == models.ModeVenting {
		entry = models.NewVentingEntry(date, "")
	} else {
		entry = models.NewConversationEntry(date)
	}
	entry.ID = s.newID()
	entry.CreatedAt = s.clock.Now().UTC()
	return entry, -1
}

// commit stamps entry, places it at idx (appending when idx is -1) and writes
// the whole collection.
func (s *Service) commit(ctx context.Context, entries []models.JournalEntry, idx int, entry *models.JournalEntry) error {
	entry.UpdatedAt = s.clock.Now().UTC()
	if entry.ID == "" {
		entry.ID = s.newID()
	}
	if entry.Themes == nil {
		entry.Themes = []string{}
	}
	next := make([]models.JournalEntry, len(entries), len(entries)+1)
	copy(next, entries)
	if idx >= 0 {
		next[idx] = *entry
	} else {
		next = append(next, *entry)
	}
	if err := s.entries.SaveEntries(ctx, next); err != nil {
		return models.PersistenceError("save entries", err)
	}
	return nil
}

// classify sets sentiment and themes from the entry's user text. A failed
// classification leaves the entry without sentiment or themes.
func (s *Service) classify(ctx context.Context, entry *models.JournalEntry) {
	aiCtx, cancel := s.aiContext(ctx)
	defer cancel()

	result, err := s.ai.Classify(aiCtx, entry.UserText())
	if err != nil {
		logx.WithContext(ctx).Errorw("classification failed, storing entry unclassified",
			logx.Field("date", entry.Date),
			logx.Field("mode", string(entry.Mode)),
			logx.Field("error", err.Error()))
		entry.Sentiment = ""
		entry.Themes = []string{}
		return
	}
	entry.Sentiment = result.Sentiment
	entry.Themes = cleanThemes(result.Themes)
}

func cleanThemes(themes []string) []string {
	out := make([]string, 0, len(themes))
	seen := make(map[string]struct{}, len(themes))
	for _, t := range themes {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

func indexOf(entries []models.JournalEntry, date string, mode models.Mode) int {
	for i := range entries {
		if entries[i].Date == date && entries[i].Mode == mode {
			return i
		}
	}
	return -1
}

// requireDate validates an explicit date; unlike resolveDate it has no default.
func requireDate(date string) error {
	if date == "" {
		return models.Validationf("date is required")
	}
	if _, err := calendar.Parse(date); err != nil {
		return models.Validationf("%v", err)
	}
	return nil
}
