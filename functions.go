package mf2

import (
	"math"
	"strconv"

	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// builtinFunctions returns the functions every message can call.
// Numbers are formatted according to the primary locale of the bundle.
func (bundle *Bundle) builtinFunctions() map[string]Function {
	printer := message.NewPrinter(bundle.locales[0])
	return map[string]Function{
		"string": formatString,
		"number": func(operand Value, options map[string]Value) Value {
			return formatNumber(printer, operand, options, false)
		},
		"integer": func(operand Value, options map[string]Value) Value {
			return formatNumber(printer, operand, options, true)
		},
	}
}

func formatString(operand Value, _ map[string]Value) Value {
	if operand == nil {
		return String("")
	}
	return String(operand.String())
}

func formatNumber(printer *message.Printer, operand Value, options map[string]Value, integer bool) Value {
	var value float64
	switch o := operand.(type) {
	case nil:
		if integer {
			return &NoValue{value: ":integer"}
		}
		return &NoValue{value: ":number"}
	case *NumberValue:
		value = o.Value
	default:
		parsed, err := strconv.ParseFloat(o.String(), 64)
		if err != nil {
			return &NoValue{value: "|" + o.String() + "|"}
		}
		value = parsed
	}

	var formatOptions []number.Option
	if integer {
		value = math.Trunc(value)
	} else {
		if digits, ok := digitsOption(options, "minimumFractionDigits"); ok {
			formatOptions = append(formatOptions, number.MinFractionDigits(digits))
		}
		if digits, ok := digitsOption(options, "maximumFractionDigits"); ok {
			formatOptions = append(formatOptions, number.MaxFractionDigits(digits))
		}
	}

	return &NumberValue{
		Value:     value,
		Formatted: printer.Sprint(number.Decimal(value, formatOptions...)),
	}
}

func digitsOption(options map[string]Value, name string) (int, bool) {
	option, set := options[name]
	if !set {
		return 0, false
	}
	digits, err := strconv.Atoi(option.String())
	if err != nil || digits < 0 {
		return 0, false
	}
	return digits, true
}
