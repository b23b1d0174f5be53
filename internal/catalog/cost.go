package catalog

import "math"

// basePrice is the price of the next unit after count purchases.
func basePrice(t *Tier, count float64) float64 {
	return math.Floor(t.InitialCost * math.Pow(t.CostFactor, count))
}

// Cost returns the price of buying amount more units of t when count have
// already been purchased. The price curve is geometric with ratio CostFactor.
func Cost(t *Tier, amount, count float64) float64 {
	if amount <= 0 {
		return 0
	}
	r := t.CostFactor
	a := basePrice(t, count)
	if r == 1 {
		return a * amount
	}
	return math.Floor(a * (math.Pow(r, amount) - 1) / (r - 1))
}

// MaxAffordable returns the largest n with Cost(t, n, count) <= money.
func MaxAffordable(t *Tier, money, count float64) float64 {
	r := t.CostFactor
	a := basePrice(t, count)
	if a <= 0 || money < a {
		return 0
	}

	if r == 1 {
		return math.Floor(money / a)
	}
	n := math.Floor(math.Log(1+money*(r-1)/a) / math.Log(r))

	// The logarithm can land one off in either direction. Past 2^53 the
	// steps no longer change n, so the loops stop there.
	for n > 0 && n-1 != n && Cost(t, n, count) > money {
		n--
	}
	for n+1 != n {
		c := Cost(t, n+1, count)
		if math.IsInf(c, 1) || c > money {
			break
		}
		n++
	}
	return n
}
