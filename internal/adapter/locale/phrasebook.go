package locale

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"newsbot/internal/domain/ports"
)

//go:embed locales/*.yaml
var messageFiles embed.FS

// Phrasebook renders reply texts from embedded message catalogs, falling back to English.
type Phrasebook struct {
	localizer *i18n.Localizer
}

var _ ports.Phrasebook = (*Phrasebook)(nil)

// New loads the embedded catalogs and selects locale.
func New(locale string) (*Phrasebook, error) {
	bundle, err := loadBundle(messageFiles)
	if err != nil {
		return nil, err
	}
	return &Phrasebook{
		localizer: i18n.NewLocalizer(bundle, locale, language.English.String()),
	}, nil
}

func loadBundle(fsys fs.FS) (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("list message files: %w", err)
	}
	for _, file := range files {
		if _, err := bundle.LoadMessageFileFS(fsys, file); err != nil {
			return nil, fmt.Errorf("load %s: %w", path.Base(file), err)
		}
	}
	return bundle, nil
}

// Phrase renders the message id with data. Unknown ids render as the id itself.
func (p *Phrasebook) Phrase(id string, data map[string]any) string {
	text, err := p.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil && text == "" {
		return id
	}
	return text
}
