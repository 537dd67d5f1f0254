/*
Responsibilities
- Turn one raw attribute list into the final props of an output node
- Normalize attribute names for native elements
- Resolve absent, bracketed and style values
- Drop blacklisted names
- Overlay the result onto the default bindings

Per raw attribute
 1. Absent value -> true
 2. Bracketed source -> evaluated; a failure drops only that attribute
 3. String value on style -> ordered Style
 4. Otherwise the string literal as written

Markup keys win over bindings. Evaluation is never retried.
*/
package attrs

import (
	"errors"
	"fmt"
	"time"

	"github.com/rohmanhakim/jsxtree/internal/evaluate"
	"github.com/rohmanhakim/jsxtree/internal/markup"
	"github.com/rohmanhakim/jsxtree/internal/metadata"
)

const styleProperty = "style"

func Resolve(raw []markup.Attribute, ctx Context) Props {
	sink := ctx.MetadataSink
	if sink == nil {
		sink = &metadata.NoopSink{}
	}
	evaluator := ctx.Evaluator
	if evaluator == nil {
		evaluator = evaluate.NewEvaluator(0)
	}

	props := make(Props, len(ctx.Bindings)+len(raw))
	for key, value := range ctx.Bindings {
		if isBlacklisted(ctx.Blacklist, key, key) {
			continue
		}
		props[key] = value
	}

	for _, attr := range raw {
		name := NormalizeName(attr.Name, ctx.Native)
		if isBlacklisted(ctx.Blacklist, attr.Name, name) {
			sink.RecordOmission(metadata.OmittedAttribute, attr.Name, []metadata.Attribute{
				metadata.NewAttr(metadata.AttrTag, ctx.Tag),
			})
			continue
		}

		value, ok := resolveValue(attr, name, evaluator, ctx.Tag, sink)
		if !ok {
			delete(props, name)
			continue
		}
		props[name] = value
	}
	return props
}

func isBlacklisted(blacklist AttrBlacklist, raw, normalized string) bool {
	if blacklist == nil {
		return false
	}
	return blacklist.IsAttrBlacklisted(raw) || blacklist.IsAttrBlacklisted(normalized)
}

func resolveValue(
	attr markup.Attribute,
	name string,
	evaluator Evaluator,
	tag string,
	sink metadata.MetadataSink,
) (any, bool) {
	switch attr.Kind {
	case markup.ValueAbsent:
		return true, true
	case markup.ValueExpression:
		value, err := evaluator.Evaluate(attr.Value)
		if err != nil {
			sink.RecordError(
				time.Now(),
				"attrs",
				"Resolve",
				evaluationCause(err),
				err.Error(),
				[]metadata.Attribute{
					metadata.NewAttr(metadata.AttrTag, tag),
					metadata.NewAttr(metadata.AttrAttribute, attr.Name),
					metadata.NewAttr(metadata.AttrExpression, attr.Value),
				},
			)
			return nil, false
		}
		return value, true
	case markup.ValueString:
		if name == styleProperty {
			return ParseStyle(attr.Value), true
		}
		return attr.Value, true
	default:
		sink.RecordError(
			time.Now(),
			"attrs",
			"Resolve",
			metadata.CauseInvariantViolation,
			fmt.Sprintf("unknown attribute value kind %d", attr.Kind),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrAttribute, attr.Name),
			},
		)
		return nil, false
	}
}

func evaluationCause(err error) metadata.ErrorCause {
	var evalErr *evaluate.EvaluationError
	if errors.As(err, &evalErr) {
		return evaluate.MapToMetadataCause(evalErr)
	}
	return metadata.CauseEvaluationFailure
}
