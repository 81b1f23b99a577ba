package graphql

import (
	"context"
	"errors"
	"strconv"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/introspection"
	"github.com/vektah/gqlparser/v2/ast"
)

var errIntrospectionDisabled = errors.New("introspection disabled")

func (ec *executionContext) introspectSchema() (*introspection.Schema, error) {
	if ec.DisableIntrospection {
		return nil, errIntrospectionDisabled
	}
	return introspection.WrapSchema(ec.Schema()), nil
}

func (ec *executionContext) introspectType(name string) (*introspection.Type, error) {
	if ec.DisableIntrospection {
		return nil, errIntrospectionDisabled
	}
	return introspection.WrapTypeFromDef(ec.Schema(), ec.Schema().Types[name]), nil
}

func (ec *executionContext) _Query___schema(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
	return resolveField(ctx, ec, "Query", field, false, nil,
		func(ctx context.Context) (any, error) {
			s, err := ec.introspectSchema()
			if err != nil {
				return nil, err
			}
			return s, nil
		},
		ec.marshalO__Schema,
	)
}

func (ec *executionContext) _Query___type(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
	return resolveField(ctx, ec, "Query", field, false, ec.field_Query___type_args,
		func(ctx context.Context) (any, error) {
			fc := graphql.GetFieldContext(ctx)
			t, err := ec.introspectType(fc.Args["name"].(string))
			if err != nil {
				return nil, err
			}
			return t, nil
		},
		ec.marshalO__Type,
	)
}

var (
	__SchemaImplementors     = []string{"__Schema"}
	__TypeImplementors       = []string{"__Type"}
	__FieldImplementors      = []string{"__Field"}
	__InputValueImplementors = []string{"__InputValue"}
	__EnumValueImplementors  = []string{"__EnumValue"}
	__DirectiveImplementors  = []string{"__Directive"}
)

func (ec *executionContext) ___Schema(ctx context.Context, sel ast.SelectionSet, obj *introspection.Schema) graphql.Marshaler {
	return ec.object(ctx, sel, __SchemaImplementors, func(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
		switch field.Name {
		case "description":
			return property(ctx, ec, "__Schema", field, obj.Description(), ec.marshalOString)
		case "types":
			return property(ctx, ec, "__Schema", field, obj.Types(), ec.marshalN__Types)
		case "queryType":
			return property(ctx, ec, "__Schema", field, obj.QueryType(), ec.marshalN__Type)
		case "mutationType":
			return property(ctx, ec, "__Schema", field, obj.MutationType(), ec.marshalO__Type)
		case "subscriptionType":
			return property(ctx, ec, "__Schema", field, obj.SubscriptionType(), ec.marshalO__Type)
		case "directives":
			return property(ctx, ec, "__Schema", field, obj.Directives(), ec.marshalN__Directives)
		default:
			panic("unknown field " + strconv.Quote(field.Name))
		}
	})
}

func (ec *executionContext) ___Type(ctx context.Context, sel ast.SelectionSet, obj *introspection.Type) graphql.Marshaler {
	return ec.object(ctx, sel, __TypeImplementors, func(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
		switch field.Name {
		case "kind":
			return property(ctx, ec, "__Type", field, obj.Kind(), ec.marshalNString)
		case "name":
			return property(ctx, ec, "__Type", field, obj.Name(), ec.marshalOString)
		case "description":
			return property(ctx, ec, "__Type", field, obj.Description(), ec.marshalOString)
		case "specifiedByURL":
			return property(ctx, ec, "__Type", field, obj.SpecifiedByURL(), ec.marshalOString)
		case "fields":
			return resolveField(ctx, ec, "__Type", field, false, ec.field_includeDeprecated_args,
				func(ctx context.Context) (any, error) {
					return obj.Fields(includeDeprecated(ctx)), nil
				},
				ec.marshalO__Fields,
			)
		case "interfaces":
			return property(ctx, ec, "__Type", field, obj.Interfaces(), ec.marshalO__Types)
		case "possibleTypes":
			return property(ctx, ec, "__Type", field, obj.PossibleTypes(), ec.marshalO__Types)
		case "enumValues":
			return resolveField(ctx, ec, "__Type", field, false, ec.field_includeDeprecated_args,
				func(ctx context.Context) (any, error) {
					return obj.EnumValues(includeDeprecated(ctx)), nil
				},
				ec.marshalO__EnumValues,
			)
		case "inputFields":
			return property(ctx, ec, "__Type", field, obj.InputFields(), ec.marshalO__InputValues)
		case "ofType":
			return property(ctx, ec, "__Type", field, obj.OfType(), ec.marshalO__Type)
		case "isOneOf":
			return property(ctx, ec, "__Type", field, obj.IsOneOf(), ec.marshalNBoolean)
		default:
			panic("unknown field " + strconv.Quote(field.Name))
		}
	})
}

func (ec *executionContext) ___Field(ctx context.Context, sel ast.SelectionSet, obj *introspection.Field) graphql.Marshaler {
	return ec.object(ctx, sel, __FieldImplementors, func(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
		switch field.Name {
		case "name":
			return property(ctx, ec, "__Field", field, obj.Name, ec.marshalNString)
		case "description":
			return property(ctx, ec, "__Field", field, obj.Description(), ec.marshalOString)
		case "args":
			return property(ctx, ec, "__Field", field, obj.Args, ec.marshalN__InputValues)
		case "type":
			return property(ctx, ec, "__Field", field, obj.Type, ec.marshalN__Type)
		case "isDeprecated":
			return property(ctx, ec, "__Field", field, obj.IsDeprecated(), ec.marshalNBoolean)
		case "deprecationReason":
			return property(ctx, ec, "__Field", field, obj.DeprecationReason(), ec.marshalOString)
		default:
			panic("unknown field " + strconv.Quote(field.Name))
		}
	})
}

func (ec *executionContext) ___InputValue(ctx context.Context, sel ast.SelectionSet, obj *introspection.InputValue) graphql.Marshaler {
	return ec.object(ctx, sel, __InputValueImplementors, func(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
		switch field.Name {
		case "name":
			return property(ctx, ec, "__InputValue", field, obj.Name, ec.marshalNString)
		case "description":
			return property(ctx, ec, "__InputValue", field, obj.Description(), ec.marshalOString)
		case "type":
			return property(ctx, ec, "__InputValue", field, obj.Type, ec.marshalN__Type)
		case "defaultValue":
			return property(ctx, ec, "__InputValue", field, obj.DefaultValue, ec.marshalOString)
		case "isDeprecated":
			return property(ctx, ec, "__InputValue", field, obj.IsDeprecated(), ec.marshalNBoolean)
		case "deprecationReason":
			return property(ctx, ec, "__InputValue", field, obj.DeprecationReason(), ec.marshalOString)
		default:
			panic("unknown field " + strconv.Quote(field.Name))
		}
	})
}

func (ec *executionContext) ___EnumValue(ctx context.Context, sel ast.SelectionSet, obj *introspection.EnumValue) graphql.Marshaler {
	return ec.object(ctx, sel, __EnumValueImplementors, func(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
		switch field.Name {
		case "name":
			return property(ctx, ec, "__EnumValue", field, obj.Name, ec.marshalNString)
		case "description":
			return property(ctx, ec, "__EnumValue", field, obj.Description(), ec.marshalOString)
		case "isDeprecated":
			return property(ctx, ec, "__EnumValue", field, obj.IsDeprecated(), ec.marshalNBoolean)
		case "deprecationReason":
			return property(ctx, ec, "__EnumValue", field, obj.DeprecationReason(), ec.marshalOString)
		default:
			panic("unknown field " + strconv.Quote(field.Name))
		}
	})
}

func (ec *executionContext) ___Directive(ctx context.Context, sel ast.SelectionSet, obj *introspection.Directive) graphql.Marshaler {
	return ec.object(ctx, sel, __DirectiveImplementors, func(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
		switch field.Name {
		case "name":
			return property(ctx, ec, "__Directive", field, obj.Name, ec.marshalNString)
		case "description":
			return property(ctx, ec, "__Directive", field, obj.Description(), ec.marshalOString)
		case "isRepeatable":
			return property(ctx, ec, "__Directive", field, obj.IsRepeatable, ec.marshalNBoolean)
		case "locations":
			return property(ctx, ec, "__Directive", field, obj.Locations, ec.marshalNStrings)
		case "args":
			return property(ctx, ec, "__Directive", field, obj.Args, ec.marshalN__InputValues)
		default:
			panic("unknown field " + strconv.Quote(field.Name))
		}
	})
}

func includeDeprecated(ctx context.Context) bool {
	v, _ := graphql.GetFieldContext(ctx).Args["includeDeprecated"].(*bool)
	return v != nil && *v
}

func (ec *executionContext) marshalO__Schema(ctx context.Context, sel ast.SelectionSet, v *introspection.Schema) graphql.Marshaler {
	if v == nil {
		return graphql.Null
	}
	return ec.___Schema(ctx, sel, v)
}

func (ec *executionContext) marshalN__Type(ctx context.Context, sel ast.SelectionSet, v *introspection.Type) graphql.Marshaler {
	if v == nil {
		if !graphql.HasFieldError(ctx, graphql.GetFieldContext(ctx)) {
			ec.Errorf(ctx, "the requested element is null which the schema does not allow")
		}
		return graphql.Null
	}
	return ec.___Type(ctx, sel, v)
}

func (ec *executionContext) marshalO__Type(ctx context.Context, sel ast.SelectionSet, v *introspection.Type) graphql.Marshaler {
	if v == nil {
		return graphql.Null
	}
	return ec.___Type(ctx, sel, v)
}

func (ec *executionContext) marshalN__Types(ctx context.Context, sel ast.SelectionSet, v []introspection.Type) graphql.Marshaler {
	return marshalList(ctx, sel, v, func(ctx context.Context, sel ast.SelectionSet, t introspection.Type) graphql.Marshaler {
		return ec.___Type(ctx, sel, &t)
	})
}

func (ec *executionContext) marshalO__Types(ctx context.Context, sel ast.SelectionSet, v []introspection.Type) graphql.Marshaler {
	if v == nil {
		return graphql.Null
	}
	return ec.marshalN__Types(ctx, sel, v)
}

func (ec *executionContext) marshalO__Fields(ctx context.Context, sel ast.SelectionSet, v []introspection.Field) graphql.Marshaler {
	if v == nil {
		return graphql.Null
	}
	return marshalList(ctx, sel, v, func(ctx context.Context, sel ast.SelectionSet, f introspection.Field) graphql.Marshaler {
		return ec.___Field(ctx, sel, &f)
	})
}

func (ec *executionContext) marshalN__InputValues(ctx context.Context, sel ast.SelectionSet, v []introspection.InputValue) graphql.Marshaler {
	return marshalList(ctx, sel, v, func(ctx context.Context, sel ast.SelectionSet, iv introspection.InputValue) graphql.Marshaler {
		return ec.___InputValue(ctx, sel, &iv)
	})
}

func (ec *executionContext) marshalO__InputValues(ctx context.Context, sel ast.SelectionSet, v []introspection.InputValue) graphql.Marshaler {
	if v == nil {
		return graphql.Null
	}
	return ec.marshalN__InputValues(ctx, sel, v)
}

func (ec *executionContext) marshalO__EnumValues(ctx context.Context, sel ast.SelectionSet, v []introspection.EnumValue) graphql.Marshaler {
	if v == nil {
		return graphql.Null
	}
	return marshalList(ctx, sel, v, func(ctx context.Context, sel ast.SelectionSet, ev introspection.EnumValue) graphql.Marshaler {
		return ec.___EnumValue(ctx, sel, &ev)
	})
}

func (ec *executionContext) marshalN__Directives(ctx context.Context, sel ast.SelectionSet, v []introspection.Directive) graphql.Marshaler {
	return marshalList(ctx, sel, v, func(ctx context.Context, sel ast.SelectionSet, d introspection.Directive) graphql.Marshaler {
		return ec.___Directive(ctx, sel, &d)
	})
}
