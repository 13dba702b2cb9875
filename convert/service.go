package convert

import (
	"encoding"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/go-viper/mapstructure/v2"

	"propbind/internal/match"
	"propbind/primitive"
)

// ErrNoConversion is wrapped by every conversion failure.
var ErrNoConversion = errors.New("no conversion")

var (
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	bytesType           = reflect.TypeFor[[]byte]()
	timeType            = reflect.TypeFor[time.Time]()
	durationType        = reflect.TypeFor[time.Duration]()
	dateTimeType        = reflect.TypeFor[strfmt.DateTime]()
	strfmtDurationType  = reflect.TypeFor[strfmt.Duration]()
)

type casterKey struct {
	src, dst reflect.Type
}

// Service converts values into the parameter types of setters. It is safe
// for concurrent use; casters may be registered at any time.
type Service struct {
	categories primitive.CategoryEnum
	decode     bool
	hooks      []mapstructure.DecodeHookFunc
	logger     *slog.Logger

	mu      sync.RWMutex
	casters map[casterKey]Caster
}

type Option func(*Service)

// WithCategories limits primitive conversions to the given categories.
func WithCategories(categories primitive.CategoryEnum) Option {
	return func(s *Service) {
		s.categories = categories
	}
}

// WithoutDecoding turns off the weakly typed decoding fallback.
func WithoutDecoding() Option {
	return func(s *Service) {
		s.decode = false
	}
}

// WithDecodeHooks appends hooks to the decoding fallback.
func WithDecodeHooks(hooks ...mapstructure.DecodeHookFunc) Option {
	return func(s *Service) {
		s.hooks = append(s.hooks, hooks...)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a service with every primitive category enabled.
func New(opts ...Option) *Service {
	s := &Service{
		categories: primitive.CategoryAll,
		decode:     true,
		hooks: []mapstructure.DecodeHookFunc{
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.TextUnmarshallerHookFunc(),
		},
		logger:  slog.New(slog.DiscardHandler),
		casters: make(map[casterKey]Caster),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register adds caster functions (see ParseCaster). A caster replaces an
// earlier one for the same source and destination types.
func (s *Service) Register(casters ...any) error {
	parsed := make([]Caster, 0, len(casters))
	for i, fn := range casters {
		c, err := ParseCaster(fn)
		if err != nil {
			return fmt.Errorf("caster #%d: %w", i, err)
		}

		parsed = append(parsed, c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range parsed {
		s.casters[casterKey{c.Src, c.Dst}] = c
		s.logger.Debug("caster registered",
			slog.String("name", c.PackageAlias+"."+c.Name),
			slog.String("src", c.Src.String()),
			slog.String("dst", c.Dst.String()))
	}

	return nil
}

// Convert returns value converted to target. The result is assignable to
// target.
func (s *Service) Convert(target reflect.Type, value any) (any, error) {
	src := reflect.ValueOf(value)
	if !src.IsValid() {
		if match.IsNilable(target) {
			return reflect.Zero(target).Interface(), nil
		}

		return nil, fmt.Errorf("%w: nil to %s", ErrNoConversion, target)
	}

	out, err := s.convert(src, target)
	if err != nil {
		return nil, err
	}

	return out.Interface(), nil
}

type step func(src reflect.Value, target reflect.Type) (reflect.Value, bool, error)

func (s *Service) convert(src reflect.Value, target reflect.Type) (reflect.Value, error) {
	if out, ok, err := s.cast(src, target); err != nil || ok {
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %s to %s: %w", ErrNoConversion, src.Type(), target, err)
		}

		return out, nil
	}

	if src.Type().AssignableTo(target) {
		return src, nil
	}

	// pointers are filled and read through their element
	if target.Kind() == reflect.Pointer && src.Kind() != reflect.Pointer {
		elem, err := s.convert(src, target.Elem())
		if err != nil {
			return reflect.Value{}, err
		}

		ptr := reflect.New(target.Elem())
		ptr.Elem().Set(elem)

		return ptr, nil
	}

	if src.Kind() == reflect.Pointer && target.Kind() != reflect.Pointer {
		if src.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: nil %s to %s", ErrNoConversion, src.Type(), target)
		}

		return s.convert(src.Elem(), target)
	}

	var causes []error
	for _, try := range []step{s.primitives, s.text, s.formats, s.weakDecode} {
		out, ok, err := try(src, target)
		if ok {
			err = validate(out)
			if err == nil {
				return out, nil
			}
		}

		if err != nil {
			causes = append(causes, err)
		}
	}

	if len(causes) == 0 {
		return reflect.Value{}, fmt.Errorf("%w: %s to %s", ErrNoConversion, src.Type(), target)
	}

	return reflect.Value{}, fmt.Errorf("%w: %s to %s: %w", ErrNoConversion, src.Type(), target, errors.Join(causes...))
}

func (s *Service) cast(src reflect.Value, target reflect.Type) (reflect.Value, bool, error) {
	s.mu.RLock()
	c, ok := s.casters[casterKey{src.Type(), target}]
	s.mu.RUnlock()

	if !ok {
		return reflect.Value{}, false, nil
	}

	return c.Call(src)
}

func (s *Service) primitives(src reflect.Value, target reflect.Type) (reflect.Value, bool, error) {
	out, err := primitive.Convert(src, target, s.categories)
	switch {
	case errors.Is(err, primitive.ErrNotAllowed):
		return reflect.Value{}, false, nil
	case err != nil:
		return reflect.Value{}, false, err
	}

	return out, true, nil
}

func (s *Service) text(src reflect.Value, target reflect.Type) (reflect.Value, bool, error) {
	if !reflect.PointerTo(target).Implements(textUnmarshalerType) {
		return reflect.Value{}, false, nil
	}

	text, ok := textOf(src)
	if !ok {
		return reflect.Value{}, false, nil
	}

	out := reflect.New(target)
	if err := out.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text)); err != nil {
		return reflect.Value{}, false, err
	}

	return out.Elem(), true, nil
}

func (s *Service) formats(src reflect.Value, target reflect.Type) (reflect.Value, bool, error) {
	text, ok := textOf(src)
	if !ok {
		return reflect.Value{}, false, nil
	}

	switch target {
	case timeType, dateTimeType:
		dt, err := parseDateTime(text)
		if err != nil {
			return reflect.Value{}, false, err
		}

		if target == timeType {
			return reflect.ValueOf(time.Time(dt)), true, nil
		}

		return reflect.ValueOf(dt), true, nil

	case durationType, strfmtDurationType:
		d, err := strfmt.ParseDuration(text)
		if err != nil {
			return reflect.Value{}, false, err
		}

		return reflect.ValueOf(d).Convert(target), true, nil
	}

	return reflect.Value{}, false, nil
}

// parseDateTime accepts the strfmt date-time layouts and full dates.
func parseDateTime(text string) (strfmt.DateTime, error) {
	dt, err := strfmt.ParseDateTime(text)
	if err == nil {
		return dt, nil
	}

	if d, derr := time.Parse(strfmt.RFC3339FullDate, text); derr == nil {
		return strfmt.DateTime(d), nil
	}

	return strfmt.DateTime{}, err
}

func (s *Service) weakDecode(src reflect.Value, target reflect.Type) (reflect.Value, bool, error) {
	if !s.decode {
		return reflect.Value{}, false, nil
	}

	out := reflect.New(target)

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out.Interface(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(s.hooks...),
	})
	if err != nil {
		return reflect.Value{}, false, err
	}

	if err := decoder.Decode(src.Interface()); err != nil {
		return reflect.Value{}, false, err
	}

	return out.Elem(), true, nil
}

// validate rejects values whose IsValid method reports false.
func validate(v reflect.Value) error {
	if vv, ok := v.Interface().(interface{ IsValid() bool }); ok && !vv.IsValid() {
		return fmt.Errorf("%v is not a valid %s", v.Interface(), v.Type())
	}

	return nil
}

func textOf(v reflect.Value) (string, bool) {
	switch {
	case v.Kind() == reflect.String:
		return v.String(), true
	case v.Type().ConvertibleTo(bytesType) && v.Kind() == reflect.Slice:
		return string(v.Bytes()), true
	default:
		return "", false
	}
}
