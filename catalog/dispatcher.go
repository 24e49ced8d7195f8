package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/glintstream/go-twitch/core"
	"github.com/glintstream/go-twitch/normalize"
	"github.com/glintstream/go-twitch/urlbuild"
)

// Dispatcher executes endpoint table entries: it validates the argument map
// against the spec before any network call, builds the URL, issues the
// request through the executor, and normalizes the response body.
type Dispatcher struct {
	executor core.RequestExecutor
	baseURL  string
	logger   core.Logger
	metrics  core.MetricsRecorder
}

func NewDispatcher(
	executor core.RequestExecutor,
	baseURL string,
	logger core.Logger,
	metrics core.MetricsRecorder,
) *Dispatcher {
	if logger == nil {
		logger = glog.Nop()
	}
	if metrics == nil {
		metrics = core.NopMetricsRecorder{}
	}
	return &Dispatcher{
		executor: executor,
		baseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/") + "/",
		logger:   logger,
		metrics:  metrics,
	}
}

// Execute runs one operation. Validation failures are returned before any
// network call is made.
func (d *Dispatcher) Execute(
	ctx context.Context,
	spec OperationSpec,
	args map[string]any,
) (any, error) {
	if d == nil || d.executor == nil {
		return nil, core.NewConfigurationError("catalog: dispatcher requires a request executor")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := validateArgs(spec, args); err != nil {
		d.observe(ctx, spec, "rejected", err)
		return nil, err
	}

	queryParams, bodyParams := splitParams(spec, args)
	requestURL, err := urlbuild.Build(d.baseURL+strings.TrimLeft(spec.Path, "/"), queryParams, urlbuild.Options{
		DropEmpty:  true,
		SplitLists: spec.SplitLists,
	})
	if err != nil {
		return nil, core.NewInvalidArgument(spec.Name, "url", err.Error())
	}

	startedAt := time.Now()
	var body any
	switch strings.ToUpper(strings.TrimSpace(spec.Method)) {
	case "", "GET":
		body, err = d.executor.Get(ctx, requestURL, spec.AuthMode, spec.RequiredScopes)
	case "POST":
		body, err = d.executor.Post(ctx, requestURL, spec.AuthMode, spec.RequiredScopes, buildBody(spec, bodyParams))
	default:
		return nil, core.NewConfigurationError(
			fmt.Sprintf("catalog: %s: unsupported method %q", spec.Name, spec.Method),
		)
	}
	d.metrics.ObserveHistogram(ctx, "twitch.operation.duration_ms",
		float64(time.Since(startedAt).Milliseconds()),
		map[string]string{"operation": spec.Name},
	)
	if err != nil {
		d.observe(ctx, spec, "failed", err)
		return nil, err
	}

	body, err = normalizeBody(spec, body)
	if err != nil {
		d.observe(ctx, spec, "malformed", err)
		return nil, err
	}
	d.observe(ctx, spec, "succeeded", nil)
	return body, nil
}

func (d *Dispatcher) observe(ctx context.Context, spec OperationSpec, outcome string, err error) {
	d.metrics.IncCounter(ctx, "twitch.operation.total", 1, map[string]string{
		"operation": spec.Name,
		"outcome":   outcome,
	})
	fields := map[string]any{"operation": spec.Name, "outcome": outcome}
	if err != nil {
		fields["error"] = err.Error()
	}
	logger := d.logger
	if fieldsLogger, ok := logger.(core.FieldsLogger); ok {
		logger = fieldsLogger.WithFields(fields)
	}
	if err != nil {
		logger.Warn("operation finished")
		return
	}
	logger.Debug("operation finished")
}

func validateArgs(spec OperationSpec, args map[string]any) error {
	for _, param := range spec.Params {
		value, supplied := args[param.Name]
		if !supplied || !argPresent(value) {
			if param.Required {
				return core.NewMissingArgument(spec.Name, param.Name)
			}
			continue
		}
		if err := validateParamValue(spec, param, value); err != nil {
			return err
		}
	}
	for key := range args {
		if _, known := spec.param(key); !known {
			return core.NewInvalidArgument(spec.Name, key, "is not a declared parameter")
		}
	}
	for _, group := range spec.RequireAny {
		if !anyPresent(args, group) {
			return core.NewMissingArgument(spec.Name, strings.Join(group, " or "))
		}
	}
	for _, pair := range spec.Paired {
		first := argPresent(args[pair[0]])
		second := argPresent(args[pair[1]])
		if first != second {
			return core.NewInvalidArgument(spec.Name, pair[0],
				fmt.Sprintf("must be supplied together with %q", pair[1]))
		}
	}
	for _, pair := range spec.Ordered {
		start, startOk := args[pair[0]].(time.Time)
		end, endOk := args[pair[1]].(time.Time)
		if startOk && endOk && !start.IsZero() && !end.IsZero() && start.After(end) {
			return core.NewInvalidArgument(spec.Name, pair[0],
				fmt.Sprintf("must not be after %q", pair[1]))
		}
	}
	if spec.CombinedMax != nil {
		total := 0
		for _, name := range spec.CombinedMax.Params {
			if list, ok := args[name].([]string); ok {
				total += len(list)
			}
		}
		if total > spec.CombinedMax.Max {
			return core.NewInvalidArgument(spec.Name,
				strings.Join(spec.CombinedMax.Params, "+"),
				fmt.Sprintf("must not exceed %d combined entries", spec.CombinedMax.Max))
		}
	}
	return nil
}

func validateParamValue(spec OperationSpec, param ParamSpec, value any) error {
	switch param.Kind {
	case ParamString:
		typed, ok := value.(string)
		if !ok {
			return core.NewInvalidArgument(spec.Name, param.Name, "must be a string")
		}
		if param.Range != nil {
			if length := len(typed); length < param.Range.Min || length > param.Range.Max {
				return core.NewInvalidArgument(spec.Name, param.Name,
					fmt.Sprintf("length must be between %d and %d", param.Range.Min, param.Range.Max))
			}
		}
		if len(param.AllowedValues) > 0 && !containsString(param.AllowedValues, typed) {
			return core.NewInvalidArgument(spec.Name, param.Name,
				fmt.Sprintf("must be one of %s", strings.Join(param.AllowedValues, ", ")))
		}
	case ParamBool:
		if _, ok := value.(bool); !ok {
			return core.NewInvalidArgument(spec.Name, param.Name, "must be a bool")
		}
	case ParamInt:
		typed, ok := value.(int)
		if !ok {
			return core.NewInvalidArgument(spec.Name, param.Name, "must be an int")
		}
		if param.Range != nil && (typed < param.Range.Min || typed > param.Range.Max) {
			return core.NewInvalidArgument(spec.Name, param.Name,
				fmt.Sprintf("must be between %d and %d", param.Range.Min, param.Range.Max))
		}
	case ParamList:
		typed, ok := value.([]string)
		if !ok {
			return core.NewInvalidArgument(spec.Name, param.Name, "must be a string list")
		}
		if param.Range != nil && (len(typed) < param.Range.Min || len(typed) > param.Range.Max) {
			return core.NewInvalidArgument(spec.Name, param.Name,
				fmt.Sprintf("must have between %d and %d entries", param.Range.Min, param.Range.Max))
		}
	case ParamDatetime:
		if _, ok := value.(time.Time); !ok {
			return core.NewInvalidArgument(spec.Name, param.Name, "must be a time.Time")
		}
	case ParamJSON:
		if param.In != InBody {
			return core.NewConfigurationError(
				fmt.Sprintf("catalog: %s: parameter %q must be a body parameter", spec.Name, param.Name),
			)
		}
	default:
		return core.NewConfigurationError(
			fmt.Sprintf("catalog: %s: parameter %q has unknown kind %q", spec.Name, param.Name, param.Kind),
		)
	}
	return nil
}

func splitParams(spec OperationSpec, args map[string]any) (map[string]any, map[string]any) {
	query := map[string]any{}
	body := map[string]any{}
	for _, param := range spec.Params {
		value, supplied := args[param.Name]
		if !supplied || !argPresent(value) {
			continue
		}
		if param.In == InBody {
			body[param.Name] = value
			continue
		}
		query[param.Name] = value
	}
	return query, body
}

func buildBody(spec OperationSpec, bodyParams map[string]any) any {
	if len(bodyParams) == 0 {
		return nil
	}
	envelope := strings.TrimSpace(spec.BodyEnvelope)
	if envelope == "" {
		return bodyParams
	}
	if len(bodyParams) == 1 {
		for _, value := range bodyParams {
			return map[string]any{envelope: value}
		}
	}
	return map[string]any{envelope: bodyParams}
}

func normalizeBody(spec OperationSpec, body any) (any, error) {
	var err error
	if len(spec.DatetimeFields) > 0 {
		body, err = normalize.FieldsToTime(body, spec.DatetimeFields)
		if err != nil {
			return nil, err
		}
	}
	for _, rule := range spec.EnumRules {
		body = normalize.FieldsToEnum(body, rule.Fields, rule.Parse, rule.Fallback)
	}
	return body, nil
}

func anyPresent(args map[string]any, names []string) bool {
	for _, name := range names {
		if argPresent(args[name]) {
			return true
		}
	}
	return false
}

func containsString(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
