package types

import (
	"fmt"
	"strings"
)

// Member 是封闭枚举中的一个成员。
// Name 为规范名称（如 NOVA_2），Value 为发往服务商的取值（如 nova-2）。
type Member[T ~string] struct {
	Name  string
	Value T
}

// M 构造枚举成员。
func M[T ~string](name string, value T) Member[T] {
	return Member[T]{Name: name, Value: value}
}

// Enum 是按声明顺序保存的封闭枚举，用作模型与声音选择器。
// 只应在包级变量中构造，构造后只读，可并发使用。
type Enum[T ~string] struct {
	typeName string
	kind     string
	members  []Member[T]
	byName   map[string]int
	byValue  map[T]int
}

// NewEnum 构造封闭枚举。typeName 出现在错误信息中（如 "DeepgramSTTModels"），
// kind 描述选择器类别（如 "model"、"voice"）。名称或取值重复时 panic。
func NewEnum[T ~string](typeName, kind string, members ...Member[T]) *Enum[T] {
	e := &Enum[T]{
		typeName: typeName,
		kind:     kind,
		members:  make([]Member[T], 0, len(members)),
		byName:   make(map[string]int, len(members)),
		byValue:  make(map[T]int, len(members)),
	}
	for _, m := range members {
		key := canonicalName(m.Name)
		if _, dup := e.byName[key]; dup {
			panic(fmt.Sprintf("types: duplicate %s name %q", typeName, m.Name))
		}
		if _, dup := e.byValue[m.Value]; dup {
			panic(fmt.Sprintf("types: duplicate %s value %q", typeName, string(m.Value)))
		}
		e.byName[key] = len(e.members)
		e.byValue[m.Value] = len(e.members)
		e.members = append(e.members, m)
	}
	return e
}

// canonicalName 名称比较只忽略大小写。
func canonicalName(name string) string {
	return strings.ToUpper(name)
}

// TypeName 返回枚举类型名。
func (e *Enum[T]) TypeName() string { return e.typeName }

// Kind 返回选择器类别。
func (e *Enum[T]) Kind() string { return e.kind }

// Len 返回成员数量。
func (e *Enum[T]) Len() int { return len(e.members) }

// Members 返回全部成员的副本。
func (e *Enum[T]) Members() []Member[T] {
	out := make([]Member[T], len(e.members))
	copy(out, e.members)
	return out
}

// Names 按声明顺序返回成员名称。
func (e *Enum[T]) Names() []string {
	out := make([]string, len(e.members))
	for i, m := range e.members {
		out[i] = m.Name
	}
	return out
}

// Values 按声明顺序返回成员取值。
func (e *Enum[T]) Values() []T {
	out := make([]T, len(e.members))
	for i, m := range e.members {
		out[i] = m.Value
	}
	return out
}

// Contains 判断 v 是否为枚举成员。
func (e *Enum[T]) Contains(v T) bool {
	_, ok := e.byValue[v]
	return ok
}

// NameOf 返回成员取值对应的名称。
func (e *Enum[T]) NameOf(v T) (string, bool) {
	i, ok := e.byValue[v]
	if !ok {
		return "", false
	}
	return e.members[i].Name, true
}

// Lookup 按名称（大小写不敏感）查找成员。
func (e *Enum[T]) Lookup(name string) (T, bool) {
	i, ok := e.byName[canonicalName(name)]
	if !ok {
		var zero T
		return zero, false
	}
	return e.members[i].Value, true
}

// Normalize 将选择器规范化为枚举成员。
//
// 接受两种输入：
//   - 枚举成员本身（类型为 T 且属于该枚举），原样返回；
//   - 字符串，按成员名称大小写不敏感匹配。
//
// 其余情况返回 ErrInvalidArgument，错误信息列出全部合法名称。
func (e *Enum[T]) Normalize(value any) (T, error) {
	var zero T
	switch v := value.(type) {
	case string:
		if m, ok := e.Lookup(v); ok {
			return m, nil
		}
		return zero, Errorf(ErrInvalidArgument,
			"invalid %s name: '%s'. expected type: %s or string with value in %s",
			e.kind, v, e.typeName, e.validNames())
	case T:
		if e.Contains(v) {
			return v, nil
		}
	}
	return zero, Errorf(ErrInvalidArgument,
		"invalid value type: '%v'. expected type: %s or string with value in %s",
		value, e.typeName, e.validNames())
}

// NormalizeOr 与 Normalize 相同，但 nil 与空字符串选择 def。
func (e *Enum[T]) NormalizeOr(value any, def T) (T, error) {
	switch v := value.(type) {
	case nil:
		return def, nil
	case string:
		if v == "" {
			return def, nil
		}
	case T:
		if v == "" {
			return def, nil
		}
	}
	return e.Normalize(value)
}

func (e *Enum[T]) validNames() string {
	names := make([]string, len(e.members))
	for i, m := range e.members {
		names[i] = m.Name
	}
	return strings.Join(names, ", ")
}

// Normalize 是 e.Normalize 的函数形式。
func Normalize[T ~string](e *Enum[T], value any) (T, error) {
	return e.Normalize(value)
}
