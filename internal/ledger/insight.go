package ledger

import (
	"fmt"
	"math"
)

// Level is the tone of an insight message.
type Level string

const (
	LevelNeutral Level = "neutral"
	LevelDanger  Level = "danger"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
)

// Insight is the single coaching message shown for a metrics snapshot.
type Insight struct {
	Code    string `json:"code"`
	Level   Level  `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// breakEvenMargin is how close (in percentage points) the delivery rate may get to the
// break-even rate before it is flagged.
const breakEvenMargin = 5

type insightRule struct {
	code  string
	match func(m Metrics) bool
	build func(m Metrics) Insight
}

// insightRules is a decision list: the first matching rule wins.
var insightRules = []insightRule{
	{
		code:  "no_orders",
		match: func(m Metrics) bool { return m.TotalOrders == 0 },
		build: func(m Metrics) Insight {
			return Insight{
				Level:   LevelNeutral,
				Title:   "Start tracking",
				Message: "Add your first order to see how your business is doing.",
			}
		},
	},
	{
		code: "delivery_rate_danger",
		match: func(m Metrics) bool {
			return m.DeliveryRate != 0 && m.DeliveryRate <= m.BreakEvenDeliveryRate+breakEvenMargin
		},
		build: func(m Metrics) Insight {
			return Insight{
				Level: LevelDanger,
				Title: "Delivery rate too close to break-even",
				Message: fmt.Sprintf(
					"Only %.0f%% of orders get delivered and you need %.0f%% to break even. Call every customer to confirm before shipping.",
					m.DeliveryRate, m.BreakEvenDeliveryRate),
			}
		},
	},
	{
		code:  "negative_unit_profit",
		match: func(m Metrics) bool { return m.ProfitPerUnit < 0 },
		build: func(m Metrics) Insight {
			return Insight{
				Level: LevelWarning,
				Title: "Losing money per unit",
				Message: fmt.Sprintf(
					"Each delivered unit currently loses %s. Review ad spend, returns and pricing.",
					FormatMAD(math.Abs(m.ProfitPerUnit))),
			}
		},
	},
	{
		code: "capital_in_stock",
		match: func(m Metrics) bool {
			cash := m.CashFlow.CashBalance
			return cash < 0 && m.CashFlow.InventoryValue > math.Abs(cash)
		},
		build: func(m Metrics) Insight {
			return Insight{
				Level: LevelInfo,
				Title: "Your money is in stock",
				Message: fmt.Sprintf(
					"Cash is %s but you hold %s of materials. The capital is parked in inventory, not lost.",
					FormatMAD(m.CashFlow.CashBalance), FormatMAD(m.CashFlow.InventoryValue)),
			}
		},
	},
	{
		code:  "ready_to_scale",
		match: func(m Metrics) bool { return m.ProfitPerUnit > 50 && m.DeliveryRate > 60 },
		build: func(m Metrics) Insight {
			return Insight{
				Level: LevelSuccess,
				Title: "Ready to scale",
				Message: fmt.Sprintf(
					"You make %s per unit with a %.0f%% delivery rate. Consider increasing scaling ad spend.",
					FormatMAD(m.ProfitPerUnit), m.DeliveryRate),
			}
		},
	},
}

var defaultInsight = Insight{
	Code:    "keep_tracking",
	Level:   LevelNeutral,
	Title:   "Keep tracking",
	Message: "Keep recording orders, returns and ad spend to sharpen these numbers.",
}

// Evaluate returns the insight of the first matching rule.
func Evaluate(m Metrics) Insight {
	for _, rule := range insightRules {
		if rule.match(m) {
			insight := rule.build(m)
			insight.Code = rule.code
			return insight
		}
	}
	return defaultInsight
}
