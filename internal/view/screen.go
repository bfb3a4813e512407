package view

import (
	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

// Ticket выдаётся при старте загрузки области. Результат загрузки
// применяется только если билет всё ещё последний для своей области.
type Ticket struct {
	Region RegionID
	Seq    uint64
}

// Screen видимое состояние: текущая страница и открытое модальное окно.
// Screen не синхронизирован, доступ сериализует владелец.
type Screen struct {
	content *Page
	prompt  Prompt
	seq     uint64
}

// NewScreen создаёт пустой экран.
func NewScreen() *Screen {
	return &Screen{}
}

// Install заменяет содержимое. Билеты, выданные для прежней страницы,
// после этого ничего не меняют.
func (s *Screen) Install(p *Page) {
	s.content = p
}

// Page текущее содержимое, nil до первой установки.
func (s *Screen) Page() *Page {
	return s.content
}

// Current идентификатор текущей страницы.
func (s *Screen) Current() PageID {
	if s.content == nil {
		return PageHome
	}
	return s.content.ID
}

// Begin переводит область в загрузку и выдаёт билет.
// Если области на экране нет, ok == false.
func (s *Screen) Begin(id RegionID) (Ticket, bool) {
	r := s.content.Region(id)
	if r == nil {
		return Ticket{}, false
	}
	s.seq++
	r.seq = s.seq
	r.State, r.Message = StateLoading, r.loadingMessage
	return Ticket{Region: id, Seq: s.seq}, true
}

// Patch применяет fn к области билета. Если область исчезла или для неё
// уже начата более новая загрузка, ничего не происходит и возвращается false.
func (s *Screen) Patch(t Ticket, fn func(r *Region)) bool {
	r := s.content.Region(t.Region)
	if r == nil || r.seq != t.Seq {
		return false
	}
	fn(r)
	return true
}

// Prompt открытое модальное окно.
func (s *Screen) Prompt() Prompt {
	return s.prompt
}

// OpenPrompt открывает окно, заменяя предыдущее.
func (s *Screen) OpenPrompt(p Prompt) {
	s.prompt = p
}

// ClosePrompt закрывает окно kind. Пустой kind закрывает любое.
func (s *Screen) ClosePrompt(kind PromptKind) {
	if kind == "" || s.prompt.Kind == kind {
		s.prompt = Prompt{}
	}
}

// Snapshot глубокая копия текущего содержимого.
func (s *Screen) Snapshot() *Page {
	if s.content == nil {
		return nil
	}
	p := *s.content
	if p.Profile != nil {
		u := *p.Profile
		p.Profile = &u
	}
	p.Regions = make([]*Region, len(s.content.Regions))
	for i, r := range s.content.Regions {
		p.Regions[i] = cloneRegion(r)
	}
	return &p
}

func cloneRegion(r *Region) *Region {
	c := *r
	if r.Plans != nil {
		c.Plans = append([]models.Plan(nil), r.Plans...)
	}
	if r.Subscriptions != nil {
		c.Subscriptions = append([]models.Subscription(nil), r.Subscriptions...)
	}
	if r.Stats != nil {
		st := *r.Stats
		c.Stats = &st
	}
	return &c
}
