package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/jobtracker/internal/logging"
)

// ColVersion is the key column of the ResumeLinks table.
const ColVersion = "Version"

// Service provides the logger and view workflows over a row store.
type Service struct {
	store    Store
	forms    FormSet
	prompter Prompter

	cache    *MembershipCache
	join     *StatusJoin
	resolver *Resolver

	now   func() time.Time
	newID func() string
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithPrompter sets where ambiguous-match listings are shown.
func WithPrompter(p Prompter) ServiceOption {
	return func(s *Service) { s.prompter = p }
}

// WithClock overrides the clock used for "today" defaults.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides the generator for new row IDs.
func WithIDGenerator(gen func() string) ServiceOption {
	return func(s *Service) { s.newID = gen }
}

// NewService creates a new Service instance.
func NewService(store Store, forms FormSet, opts ...ServiceOption) *Service {
	s := &Service{
		store: store,
		forms: forms,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cache = NewMembershipCache(store)
	s.join = NewStatusJoin(s.cache)
	s.resolver = NewResolver(store, s.prompter)
	return s
}

// Forms returns the configured forms.
func (s *Service) Forms() FormSet { return s.forms }

// ListTables returns information about all registered tables.
func (s *Service) ListTables() []TableInfo {
	defs := All()
	infos := make([]TableInfo, len(defs))
	for i, def := range defs {
		infos[i] = def.Info
	}
	return infos
}

// Init creates every registered table the store is missing.
// Stores that cannot create tables are left untouched.
func (s *Service) Init(ctx context.Context) error {
	ti, ok := s.store.(TableInitializer)
	if !ok {
		logging.FromContext(ctx).Debug("store does not create tables, skipping init")
		return nil
	}
	for _, def := range All() {
		if err := ti.EnsureTable(ctx, def); err != nil {
			return fmt.Errorf("init %s: %w", def.Info.Name, err)
		}
	}
	s.cache.Invalidate()
	return nil
}

// FindApplication resolves a single application and attaches its status.
func (s *Service) FindApplication(ctx context.Context, search AppSearch) (Application, error) {
	rec, err := s.resolver.Find(ctx, search)
	if err != nil {
		return Application{}, err
	}
	apps, err := s.join.Enrich(ctx, []Record{rec})
	if err != nil {
		return Application{}, err
	}
	return apps[0], nil
}

// Status returns the derived status for an application ID.
func (s *Service) Status(ctx context.Context, id string) (Status, error) {
	if strings.TrimSpace(id) == "" {
		return "", invalidInput("application id is required")
	}
	return s.join.Status(ctx, id)
}

// LogApplication appends a new application. Blank inputs take the form
// defaults, salary inputs given in thousands are scaled, and a new ID is
// generated.
func (s *Service) LogApplication(ctx context.Context, inputs map[string]string) (Record, error) {
	return s.logForm(ctx, FormApplication, nil, inputs)
}

// LogRelated appends a rejection, closure, consideration or interview for
// the application identified by search.
func (s *Service) LogRelated(ctx context.Context, kind string, search AppSearch, inputs map[string]string) (Record, error) {
	form, err := s.forms.Form(kind)
	if err != nil {
		return nil, err
	}
	if !form.Related {
		return nil, invalidInput("form %q is not linked to an application", kind)
	}
	return s.logForm(ctx, kind, &search, inputs)
}

// LogResume appends a resume link. The Version key is "<Role> <yyyyMMdd>".
func (s *Service) LogResume(ctx context.Context, inputs map[string]string) (Record, error) {
	return s.logForm(ctx, FormResume, nil, inputs)
}

func (s *Service) logForm(ctx context.Context, kind string, search *AppSearch, inputs map[string]string) (Record, error) {
	form, err := s.forms.Form(kind)
	if err != nil {
		return nil, err
	}
	def, ok := Get(form.Table)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, form.Table)
	}

	log := logging.WithFields(ctx, "form", kind, "table", form.Table)

	in := s.applyDefaults(form, inputs)

	if err := checkColumns(def, in); err != nil {
		return nil, err
	}
	if err := ValidateInputs(in, form.Required); err != nil {
		return nil, err
	}
	normalize(def, in)
	if err := ValidateValues(def, in); err != nil {
		return nil, err
	}

	if form.Related {
		if search == nil {
			return nil, invalidInput("form %q needs an application search", kind)
		}
		app, err := s.resolver.Find(ctx, *search)
		if err != nil {
			return nil, err
		}
		in[ColApplicationID] = app.Text(ColID)
	}
	if form.GenerateID {
		in[ColID] = s.newID()
	}
	if kind == FormResume {
		in[ColVersion] = versionKey(in)
	}

	header, err := s.header(ctx, def)
	if err != nil {
		return nil, err
	}

	row := make([]Value, len(header))
	rec := make(Record, len(header))
	for i, col := range header {
		ft := FieldText
		if spec, ok := def.Spec(col); ok {
			ft = spec.Type
		}
		row[i] = ParseCell(in[col], ft)
		rec[col] = row[i]
	}

	if err := s.store.AppendRow(ctx, form.Table, row); err != nil {
		return nil, fmt.Errorf("append to %s: %w", form.Table, err)
	}
	rowsAppended.WithLabelValues(form.Table).Inc()

	if form.Related {
		s.cache.Invalidate(form.Table)
	}

	log.Info("row logged", "id", rec.Text(ColID), "application_id", rec.Text(ColApplicationID))
	return rec, nil
}

// header returns the live header of a table, falling back to the registered
// columns for a table with no header yet.
func (s *Service) header(ctx context.Context, def TableDefinition) ([]string, error) {
	t, err := LoadTable(ctx, s.store, def.Info.Name)
	if err != nil {
		return nil, err
	}
	if len(t.Header) == 0 {
		return def.Info.Columns, nil
	}
	return t.Header, nil
}

func (s *Service) applyDefaults(form Form, inputs map[string]string) map[string]string {
	in := make(map[string]string, len(inputs)+len(form.Defaults))
	for k, v := range inputs {
		in[k] = strings.TrimSpace(v)
	}
	for col, def := range form.Defaults {
		if in[col] != "" {
			continue
		}
		if strings.EqualFold(def, DefaultToday) {
			def = s.now().Format(DateLayout)
		}
		in[col] = def
	}
	return in
}

// checkColumns rejects inputs naming columns the table does not have.
func checkColumns(def TableDefinition, in map[string]string) error {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := def.Spec(k); !ok {
			return &MissingColumnError{Table: def.Info.Name, Column: k}
		}
	}
	return nil
}

func normalize(def TableDefinition, in map[string]string) {
	for _, spec := range def.FieldSpecs {
		if spec.Normalizer == nil {
			continue
		}
		if v := in[spec.Name]; v != "" {
			in[spec.Name] = spec.Normalizer(v)
		}
	}
}

func versionKey(in map[string]string) string {
	return strings.TrimSpace(in["Role"] + " " + CompactDate(ParseCell(in["Date"], FieldDate)))
}
