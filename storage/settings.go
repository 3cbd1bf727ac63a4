package storage

// DefaultLanguage is used until the user picks a display language.
const DefaultLanguage = "hi"

// Settings manages the small per-user settings slots. The language
// code is stored as a raw string, not JSON.
type Settings struct {
	store Store
}

func NewSettings(store Store) *Settings {
	return &Settings{store: store}
}

func (s *Settings) Language() (string, error) {
	raw, ok, err := s.store.Get(LanguageKey)
	if err != nil {
		return "", err
	}
	if !ok || len(raw) == 0 {
		return DefaultLanguage, nil
	}
	return string(raw), nil
}

func (s *Settings) SetLanguage(code string) error {
	return s.store.Set(LanguageKey, []byte(code))
}
