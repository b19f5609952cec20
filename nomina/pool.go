/*
pool.go - The productivity pool

PURPOSE:
  A day-indexed balance of spendable productivity hours, exclusively owned
  by one worker's allocation. All mutation goes through Take and Put so the
  conservation invariant stays checkable: hours leaving the pool equal
  hours landing on some day, and hours returned on reclamation equal the
  transferred amount being zeroed.
*/
package nomina

// TransferPart records hours drained from one source day.
type TransferPart struct {
	From  Date
	Hours Hours
}

// productivityPool tracks the remaining spendable hours per calendar day.
type productivityPool struct {
	balance map[Date]Hours
	order   []Date // ascending, fixed at construction
}

// newProductivityPool seeds the pool from each day's raw productivity
// total, rounded per the half-up convention.
func newProductivityPool(days []Date, raw map[Date]Hours) *productivityPool {
	p := &productivityPool{
		balance: make(map[Date]Hours, len(days)),
		order:   days,
	}
	for _, d := range days {
		p.balance[d] = raw[d].Round()
	}
	return p
}

func (p *productivityPool) available(d Date) Hours { return p.balance[d] }

// Total returns the pool-wide remaining balance.
func (p *productivityPool) total() Hours {
	sum := ZeroHours()
	for _, d := range p.order {
		sum = sum.Add(p.balance[d])
	}
	return sum.Round()
}

// take drains up to amount hours, preferring the given day first and then
// all other days in ascending date order. Partial fulfillment is normal;
// callers must compare got against the requested amount.
func (p *productivityPool) take(amount Hours, prefer *Date) (got Hours, parts []TransferPart, unmet Hours) {
	rem := amount
	order := make([]Date, 0, len(p.order)+1)
	if prefer != nil {
		order = append(order, *prefer)
	}
	for _, d := range p.order {
		if prefer != nil && d.Equal(*prefer) {
			continue
		}
		order = append(order, d)
	}

	for _, d := range order {
		if !rem.IsPositive() {
			break
		}
		av := p.balance[d]
		if !av.IsPositive() {
			continue
		}
		t := rem.Min(av)
		p.balance[d] = av.Sub(t).Round()
		rem = rem.Sub(t).Round()
		got = got.Add(t).Round()
		parts = append(parts, TransferPart{From: d, Hours: t})
	}
	return got, parts, rem
}

// put returns hours to a day's balance (reclamation from a freed day, or
// giving back an abandoned partial grant).
func (p *productivityPool) put(d Date, h Hours) {
	p.balance[d] = p.balance[d].Add(h).Round()
}
