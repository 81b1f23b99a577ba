package graphql

import (
	"bytes"
	"context"
	"strconv"
	"sync/atomic"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/nitk/memory-vault/internal/api/shared/dto"
)

// Config wires the resolvers into the executable schema
type Config struct {
	Resolvers ResolverRoot
}

type ResolverRoot interface {
	Query() QueryResolver
}

type QueryResolver interface {
	MemoryMinteds(ctx context.Context, where *MemoryMintedFilter, orderBy *MemoryMintedOrderBy, orderDirection *OrderDirection, first *int, skip *int) ([]*dto.MemoryResponse, error)
	Memory(ctx context.Context, id string) (*dto.MemoryResponse, error)
	Transfers(ctx context.Context, tokenID BigInt, first *int, skip *int) ([]*dto.TransferResponse, error)
}

// NewExecutableSchema creates an ExecutableSchema from the Config
func NewExecutableSchema(cfg Config) graphql.ExecutableSchema {
	return &executableSchema{resolvers: cfg.Resolvers}
}

type executableSchema struct {
	resolvers ResolverRoot
}

func (e *executableSchema) Schema() *ast.Schema {
	return schema
}

func (e *executableSchema) Complexity(ctx context.Context, typeName, field string, childComplexity int, rawArgs map[string]any) (int, bool) {
	switch typeName + "." + field {
	case "Query.memoryMinteds", "Query.transfers":
		first, err := graphql.UnmarshalInt(rawArgs["first"])
		if err != nil || first <= 0 {
			return 0, false
		}
		return 1 + childComplexity*first, true
	}
	return 0, false
}

func (e *executableSchema) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)
	ec := executionContext{opCtx, e}
	first := true

	switch opCtx.Operation.Operation {
	case ast.Query:
		return func(ctx context.Context) *graphql.Response {
			if !first {
				return nil
			}
			first = false

			data := ec._Query(ctx, opCtx.Operation.SelectionSet)
			var buf bytes.Buffer
			data.MarshalGQL(&buf)

			return &graphql.Response{Data: buf.Bytes()}
		}

	default:
		return graphql.OneShot(graphql.ErrorResponse(ctx, "unsupported GraphQL operation"))
	}
}

type executionContext struct {
	*graphql.OperationContext
	*executableSchema
}

// region    ************************** query **************************

var queryImplementors = []string{"Query"}

func (ec *executionContext) _Query(ctx context.Context, sel ast.SelectionSet) graphql.Marshaler {
	fields := graphql.CollectFields(ec.OperationContext, sel, queryImplementors)
	ctx = graphql.WithFieldContext(ctx, &graphql.FieldContext{
		Object: "Query",
	})

	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		innerCtx := graphql.WithRootFieldContext(ctx, &graphql.RootFieldContext{
			Object: field.Name,
			Field:  field,
		})

		var resolve func(ctx context.Context) graphql.Marshaler
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("Query")
			continue
		case "memoryMinteds":
			resolve = func(ctx context.Context) graphql.Marshaler { return ec._Query_memoryMinteds(ctx, field) }
		case "memory":
			resolve = func(ctx context.Context) graphql.Marshaler { return ec._Query_memory(ctx, field) }
		case "transfers":
			resolve = func(ctx context.Context) graphql.Marshaler { return ec._Query_transfers(ctx, field) }
		case "__schema":
			resolve = func(ctx context.Context) graphql.Marshaler { return ec._Query___schema(ctx, field) }
		case "__type":
			resolve = func(ctx context.Context) graphql.Marshaler { return ec._Query___type(ctx, field) }
		default:
			panic("unknown field " + strconv.Quote(field.Name))
		}

		out.Concurrently(i, ec.rootField(innerCtx, out, field, resolve))
	}
	out.Dispatch(ctx)
	if out.Invalids > 0 {
		return graphql.Null
	}

	return out
}

// rootField runs a root resolver through the root middleware. A null in a
// non-null root field invalidates the whole query result.
func (ec *executionContext) rootField(innerCtx context.Context, fs *graphql.FieldSet, field graphql.CollectedField, resolve func(ctx context.Context) graphql.Marshaler) func(context.Context) graphql.Marshaler {
	return func(context.Context) graphql.Marshaler {
		return ec.OperationContext.RootResolverMiddleware(innerCtx, func(ctx context.Context) (res graphql.Marshaler) {
			defer func() {
				if r := recover(); r != nil {
					ec.Error(ctx, ec.Recover(ctx, r))
					res = graphql.Null
				}
				if res == graphql.Null && field.Definition.Type.NonNull {
					atomic.AddUint32(&fs.Invalids, 1)
				}
			}()
			return resolve(ctx)
		})
	}
}

func (ec *executionContext) _Query_memoryMinteds(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
	return resolveField(ctx, ec, "Query", field, true, ec.field_Query_memoryMinteds_args,
		func(ctx context.Context) (any, error) {
			fc := graphql.GetFieldContext(ctx)
			return ec.resolvers.Query().MemoryMinteds(ctx,
				fc.Args["where"].(*MemoryMintedFilter),
				fc.Args["orderBy"].(*MemoryMintedOrderBy),
				fc.Args["orderDirection"].(*OrderDirection),
				fc.Args["first"].(*int),
				fc.Args["skip"].(*int),
			)
		},
		ec.marshalNMemoryMinteds,
	)
}

func (ec *executionContext) _Query_memory(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
	return resolveField(ctx, ec, "Query", field, true, ec.field_Query_memory_args,
		func(ctx context.Context) (any, error) {
			fc := graphql.GetFieldContext(ctx)
			return ec.resolvers.Query().Memory(ctx, fc.Args["id"].(string))
		},
		ec.marshalOMemoryMinted,
	)
}

func (ec *executionContext) _Query_transfers(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
	return resolveField(ctx, ec, "Query", field, true, ec.field_Query_transfers_args,
		func(ctx context.Context) (any, error) {
			fc := graphql.GetFieldContext(ctx)
			return ec.resolvers.Query().Transfers(ctx,
				fc.Args["tokenId"].(BigInt),
				fc.Args["first"].(*int),
				fc.Args["skip"].(*int),
			)
		},
		ec.marshalNTransfers,
	)
}

// endregion ************************** query **************************

// region    ************************** arguments **************************

func (ec *executionContext) field_Query_memoryMinteds_args(ctx context.Context, rawArgs map[string]any) (map[string]any, error) {
	var err error
	args := map[string]any{}
	if args["where"], err = argument(ctx, rawArgs, "where", ec.unmarshalOMemoryMintedFilter); err != nil {
		return nil, err
	}
	if args["orderBy"], err = argument(ctx, rawArgs, "orderBy", ec.unmarshalOMemoryMintedOrderBy); err != nil {
		return nil, err
	}
	if args["orderDirection"], err = argument(ctx, rawArgs, "orderDirection", ec.unmarshalOOrderDirection); err != nil {
		return nil, err
	}
	if args["first"], err = argument(ctx, rawArgs, "first", ec.unmarshalOInt); err != nil {
		return nil, err
	}
	if args["skip"], err = argument(ctx, rawArgs, "skip", ec.unmarshalOInt); err != nil {
		return nil, err
	}
	return args, nil
}

func (ec *executionContext) field_Query_memory_args(ctx context.Context, rawArgs map[string]any) (map[string]any, error) {
	var err error
	args := map[string]any{}
	if args["id"], err = argument(ctx, rawArgs, "id", ec.unmarshalNID); err != nil {
		return nil, err
	}
	return args, nil
}

func (ec *executionContext) field_Query_transfers_args(ctx context.Context, rawArgs map[string]any) (map[string]any, error) {
	var err error
	args := map[string]any{}
	if args["tokenId"], err = argument(ctx, rawArgs, "tokenId", ec.unmarshalNBigInt); err != nil {
		return nil, err
	}
	if args["first"], err = argument(ctx, rawArgs, "first", ec.unmarshalOInt); err != nil {
		return nil, err
	}
	if args["skip"], err = argument(ctx, rawArgs, "skip", ec.unmarshalOInt); err != nil {
		return nil, err
	}
	return args, nil
}

func (ec *executionContext) field_Query___type_args(ctx context.Context, rawArgs map[string]any) (map[string]any, error) {
	var err error
	args := map[string]any{}
	if args["name"], err = argument(ctx, rawArgs, "name", ec.unmarshalNString); err != nil {
		return nil, err
	}
	return args, nil
}

func (ec *executionContext) field_includeDeprecated_args(ctx context.Context, rawArgs map[string]any) (map[string]any, error) {
	var err error
	args := map[string]any{}
	if args["includeDeprecated"], err = argument(ctx, rawArgs, "includeDeprecated", ec.unmarshalOBoolean); err != nil {
		return nil, err
	}
	return args, nil
}

// argument coerces one raw argument; coercion failures are reported as bad requests
func argument[T any](ctx context.Context, rawArgs map[string]any, name string, unmarshal func(context.Context, any) (T, error)) (T, error) {
	ctx = graphql.WithPathContext(ctx, graphql.NewPathWithField(name))
	v, err := unmarshal(ctx, rawArgs[name])
	if err != nil {
		var zero T
		return zero, badRequest("invalid "+name, err)
	}
	return v, nil
}

func (ec *executionContext) unmarshalInputMemoryMintedFilter(ctx context.Context, obj any) (MemoryMintedFilter, error) {
	var it MemoryMintedFilter
	asMap, ok := obj.(map[string]any)
	if !ok {
		return it, graphql.ErrorOnPath(ctx, errNotAnObject)
	}

	for _, k := range []string{"eventType_contains_nocase", "date_gte", "creator"} {
		v, ok := asMap[k]
		if !ok {
			continue
		}
		ctx := graphql.WithPathContext(ctx, graphql.NewPathWithField(k))

		var err error
		switch k {
		case "eventType_contains_nocase":
			it.EventTypeContainsNocase, err = ec.unmarshalOString(ctx, v)
		case "date_gte":
			it.DateGte, err = ec.unmarshalOBigInt(ctx, v)
		case "creator":
			it.Creator, err = ec.unmarshalOString(ctx, v)
		}
		if err != nil {
			return it, graphql.ErrorOnPath(ctx, err)
		}
	}

	return it, nil
}

func (ec *executionContext) unmarshalOMemoryMintedFilter(ctx context.Context, v any) (*MemoryMintedFilter, error) {
	if v == nil {
		return nil, nil
	}
	res, err := ec.unmarshalInputMemoryMintedFilter(ctx, v)
	return &res, graphql.ErrorOnPath(ctx, err)
}

func (ec *executionContext) unmarshalOMemoryMintedOrderBy(ctx context.Context, v any) (*MemoryMintedOrderBy, error) {
	if v == nil {
		return nil, nil
	}
	var res MemoryMintedOrderBy
	err := res.UnmarshalGQL(v)
	return &res, graphql.ErrorOnPath(ctx, err)
}

func (ec *executionContext) unmarshalOOrderDirection(ctx context.Context, v any) (*OrderDirection, error) {
	if v == nil {
		return nil, nil
	}
	var res OrderDirection
	err := res.UnmarshalGQL(v)
	return &res, graphql.ErrorOnPath(ctx, err)
}

func (ec *executionContext) unmarshalNBigInt(ctx context.Context, v any) (BigInt, error) {
	var res BigInt
	err := res.UnmarshalGQL(v)
	return res, graphql.ErrorOnPath(ctx, err)
}

func (ec *executionContext) unmarshalOBigInt(ctx context.Context, v any) (*BigInt, error) {
	if v == nil {
		return nil, nil
	}
	res, err := ec.unmarshalNBigInt(ctx, v)
	return &res, err
}

func (ec *executionContext) unmarshalOInt(ctx context.Context, v any) (*int, error) {
	if v == nil {
		return nil, nil
	}
	res, err := graphql.UnmarshalInt(v)
	return &res, graphql.ErrorOnPath(ctx, err)
}

func (ec *executionContext) unmarshalNID(ctx context.Context, v any) (string, error) {
	res, err := graphql.UnmarshalID(v)
	return res, graphql.ErrorOnPath(ctx, err)
}

func (ec *executionContext) unmarshalNString(ctx context.Context, v any) (string, error) {
	res, err := graphql.UnmarshalString(v)
	return res, graphql.ErrorOnPath(ctx, err)
}

func (ec *executionContext) unmarshalOString(ctx context.Context, v any) (*string, error) {
	if v == nil {
		return nil, nil
	}
	res, err := ec.unmarshalNString(ctx, v)
	return &res, err
}

func (ec *executionContext) unmarshalOBoolean(ctx context.Context, v any) (*bool, error) {
	if v == nil {
		return nil, nil
	}
	res, err := graphql.UnmarshalBoolean(v)
	return &res, graphql.ErrorOnPath(ctx, err)
}

// endregion ************************** arguments **************************

// region    ************************** objects **************************

var (
	memoryMintedImplementors = []string{"MemoryMinted"}
	transferImplementors     = []string{"Transfer"}
)

func (ec *executionContext) _MemoryMinted(ctx context.Context, sel ast.SelectionSet, obj *dto.MemoryResponse) graphql.Marshaler {
	return ec.object(ctx, sel, memoryMintedImplementors, func(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
		switch field.Name {
		case "id":
			return property(ctx, ec, "MemoryMinted", field, obj.ID, ec.marshalNID)
		case "tokenId":
			return property(ctx, ec, "MemoryMinted", field, BigInt(obj.TokenID), ec.marshalNBigInt)
		case "creator":
			return property(ctx, ec, "MemoryMinted", field, obj.Creator, ec.marshalNString)
		case "ipfsHash":
			return property(ctx, ec, "MemoryMinted", field, obj.IPFSHash, ec.marshalNString)
		case "eventType":
			return property(ctx, ec, "MemoryMinted", field, obj.EventType, ec.marshalNString)
		case "date":
			return property(ctx, ec, "MemoryMinted", field, BigInt(obj.Date), ec.marshalNBigInt)
		case "tags":
			return property(ctx, ec, "MemoryMinted", field, obj.Tags, ec.marshalNStrings)
		case "blockNumber":
			return property(ctx, ec, "MemoryMinted", field, BigIntFromUint64(obj.BlockNumber), ec.marshalNBigInt)
		case "blockTimestamp":
			return property(ctx, ec, "MemoryMinted", field, BigIntFromInt64(obj.BlockTimestamp.Unix()), ec.marshalNBigInt)
		case "transactionHash":
			return property(ctx, ec, "MemoryMinted", field, obj.TransactionHash, ec.marshalNString)
		default:
			panic("unknown field " + strconv.Quote(field.Name))
		}
	})
}

func (ec *executionContext) _Transfer(ctx context.Context, sel ast.SelectionSet, obj *dto.TransferResponse) graphql.Marshaler {
	return ec.object(ctx, sel, transferImplementors, func(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
		switch field.Name {
		case "id":
			return property(ctx, ec, "Transfer", field, obj.ID, ec.marshalNID)
		case "from":
			return property(ctx, ec, "Transfer", field, obj.From, ec.marshalNString)
		case "to":
			return property(ctx, ec, "Transfer", field, obj.To, ec.marshalNString)
		case "tokenId":
			return property(ctx, ec, "Transfer", field, BigInt(obj.TokenID), ec.marshalNBigInt)
		case "blockNumber":
			return property(ctx, ec, "Transfer", field, BigIntFromUint64(obj.BlockNumber), ec.marshalNBigInt)
		case "blockTimestamp":
			return property(ctx, ec, "Transfer", field, BigIntFromInt64(obj.BlockTimestamp.Unix()), ec.marshalNBigInt)
		case "transactionHash":
			return property(ctx, ec, "Transfer", field, obj.TransactionHash, ec.marshalNString)
		default:
			panic("unknown field " + strconv.Quote(field.Name))
		}
	})
}

// object collects the selected fields of a concrete type and resolves them in
// order. A null in a non-null field nulls the whole object.
func (ec *executionContext) object(ctx context.Context, sel ast.SelectionSet, implementors []string, resolve func(ctx context.Context, field graphql.CollectedField) graphql.Marshaler) graphql.Marshaler {
	fields := graphql.CollectFields(ec.OperationContext, sel, implementors)

	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		if field.Name == "__typename" {
			out.Values[i] = graphql.MarshalString(implementors[0])
			continue
		}

		out.Values[i] = resolve(ctx, field)
		if out.Values[i] == graphql.Null && field.Definition.Type.NonNull {
			out.Invalids++
		}
	}
	if out.Invalids > 0 {
		return graphql.Null
	}

	return out
}

// resolveField runs a field resolver through the operation's field middleware and marshals its result
func resolveField[T any](
	ctx context.Context,
	ec *executionContext,
	object string,
	field graphql.CollectedField,
	isResolver bool,
	args func(ctx context.Context, rawArgs map[string]any) (map[string]any, error),
	resolver func(ctx context.Context) (any, error),
	marshal func(ctx context.Context, sel ast.SelectionSet, v T) graphql.Marshaler,
) graphql.Marshaler {
	return graphql.ResolveField(
		ctx,
		ec.OperationContext,
		field,
		func(ctx context.Context, field graphql.CollectedField) (fc *graphql.FieldContext, err error) {
			fc = &graphql.FieldContext{
				Object:     object,
				Field:      field,
				IsMethod:   isResolver,
				IsResolver: isResolver,
			}
			if args == nil {
				return fc, nil
			}

			ctx = graphql.WithFieldContext(ctx, fc)
			if fc.Args, err = args(ctx, field.ArgumentMap(ec.Variables)); err != nil {
				ec.Error(ctx, err)
				return fc, err
			}
			return fc, nil
		},
		resolver,
		nil,
		marshal,
		true,
		field.Definition.Type.NonNull,
	)
}

// property resolves a field backed by a value that is already loaded
func property[T any](ctx context.Context, ec *executionContext, object string, field graphql.CollectedField, value T, marshal func(ctx context.Context, sel ast.SelectionSet, v T) graphql.Marshaler) graphql.Marshaler {
	return resolveField(ctx, ec, object, field, false, nil,
		func(context.Context) (any, error) { return value, nil },
		marshal,
	)
}

// endregion ************************** objects **************************

// region    ************************** marshalers **************************

func (ec *executionContext) marshalNMemoryMinted(ctx context.Context, sel ast.SelectionSet, v *dto.MemoryResponse) graphql.Marshaler {
	if v == nil {
		if !graphql.HasFieldError(ctx, graphql.GetFieldContext(ctx)) {
			ec.Errorf(ctx, "the requested element is null which the schema does not allow")
		}
		return graphql.Null
	}
	return ec._MemoryMinted(ctx, sel, v)
}

func (ec *executionContext) marshalOMemoryMinted(ctx context.Context, sel ast.SelectionSet, v *dto.MemoryResponse) graphql.Marshaler {
	if v == nil {
		return graphql.Null
	}
	return ec._MemoryMinted(ctx, sel, v)
}

func (ec *executionContext) marshalNMemoryMinteds(ctx context.Context, sel ast.SelectionSet, v []*dto.MemoryResponse) graphql.Marshaler {
	return marshalList(ctx, sel, v, ec.marshalNMemoryMinted)
}

func (ec *executionContext) marshalNTransfer(ctx context.Context, sel ast.SelectionSet, v *dto.TransferResponse) graphql.Marshaler {
	if v == nil {
		if !graphql.HasFieldError(ctx, graphql.GetFieldContext(ctx)) {
			ec.Errorf(ctx, "the requested element is null which the schema does not allow")
		}
		return graphql.Null
	}
	return ec._Transfer(ctx, sel, v)
}

func (ec *executionContext) marshalNTransfers(ctx context.Context, sel ast.SelectionSet, v []*dto.TransferResponse) graphql.Marshaler {
	return marshalList(ctx, sel, v, ec.marshalNTransfer)
}

func (ec *executionContext) marshalNBigInt(_ context.Context, _ ast.SelectionSet, v BigInt) graphql.Marshaler {
	return v
}

func (ec *executionContext) marshalNID(_ context.Context, _ ast.SelectionSet, v string) graphql.Marshaler {
	return graphql.MarshalID(v)
}

func (ec *executionContext) marshalNString(_ context.Context, _ ast.SelectionSet, v string) graphql.Marshaler {
	return graphql.MarshalString(v)
}

func (ec *executionContext) marshalOString(_ context.Context, _ ast.SelectionSet, v *string) graphql.Marshaler {
	if v == nil {
		return graphql.Null
	}
	return graphql.MarshalString(*v)
}

func (ec *executionContext) marshalNStrings(ctx context.Context, sel ast.SelectionSet, v []string) graphql.Marshaler {
	return marshalList(ctx, sel, v, ec.marshalNString)
}

func (ec *executionContext) marshalNBoolean(_ context.Context, _ ast.SelectionSet, v bool) graphql.Marshaler {
	return graphql.MarshalBoolean(v)
}

// marshalList renders a list of non-null items. A null item nulls the list.
func marshalList[T any](ctx context.Context, sel ast.SelectionSet, v []T, marshal func(ctx context.Context, sel ast.SelectionSet, v T) graphql.Marshaler) graphql.Marshaler {
	ret := make(graphql.Array, len(v))
	for i := range v {
		ctx := graphql.WithFieldContext(ctx, &graphql.FieldContext{
			Index:  &i,
			Result: &v[i],
		})
		ret[i] = marshal(ctx, sel, v[i])
		if ret[i] == graphql.Null {
			return graphql.Null
		}
	}
	return ret
}

// endregion ************************** marshalers **************************
