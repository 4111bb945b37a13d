package item

import "encoding/json"

// MoneyValue is a (currency, amount) pair. The amount travels as a decimal
// string to avoid floating-point drift; this package never interprets it
// numerically. Both parts must be present for the value to project.
type MoneyValue struct {
	Currency string
	Amount   string
}

func (v MoneyValue) Data() map[string]interface{} {
	if v.Currency == "" || v.Amount == "" {
		return nil
	}
	return map[string]interface{}{
		"currency": v.Currency,
		"value":    v.Amount,
	}
}

func (v MoneyValue) Equal(other Value) bool {
	o, ok := other.(MoneyValue)
	return ok && v.Currency == o.Currency && v.Amount == o.Amount
}

func decodeMoneyValue(raw json.RawMessage) (Value, bool) {
	var env struct {
		Currency string          `json:"currency"`
		Value    json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || len(env.Value) == 0 {
		return nil, false
	}
	amount, ok := decodeString(env.Value)
	if !ok {
		return nil, false
	}
	return MoneyValue{Currency: env.Currency, Amount: amount}, true
}
