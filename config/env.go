package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// bindEnv 按 env 标签把 <prefix>_<SECTION>_<FIELD> 变量写入 cfg。
// 未设置或为空的变量不覆盖已有值。
func bindEnv(cfg *Config, prefix string) error {
	return bindStruct(reflect.ValueOf(cfg).Elem(), prefix)
}

func bindStruct(v reflect.Value, prefix string) error {
	t := v.Type()
	for i := range t.NumField() {
		tag := t.Field(i).Tag.Get("env")
		if tag == "" || tag == "-" {
			continue
		}
		name := prefix + "_" + tag
		field := v.Field(i)

		if field.Kind() == reflect.Struct {
			if err := bindStruct(field, name); err != nil {
				return err
			}
			continue
		}

		raw := os.Getenv(name)
		if raw == "" || !field.CanSet() {
			continue
		}
		if err := parseInto(field, raw); err != nil {
			return fmt.Errorf("failed to set %s: %w", name, err)
		}
	}
	return nil
}

// parseInto 解析标量、时长与逗号分隔的字符串切片
func parseInto(field reflect.Value, raw string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(f)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type %s", field.Type())
		}
		items := strings.Split(raw, ",")
		for i := range items {
			items[i] = strings.TrimSpace(items[i])
		}
		field.Set(reflect.ValueOf(items))
	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}
	return nil
}
