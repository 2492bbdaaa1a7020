// File: constants.go
// Title: Constant Cache
// Description: Cached values of pi, e, ln2, ln3 and ln10. An entry is a
//              (digits, value) pair replaced wholesale when a request needs
//              more digits; concurrent recomputations of one constant are
//              collapsed with singleflight.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
// - 2026-10-19 v0.1.1: Chudnovsky factors on big.Int

package mathx

import (
	"context"
	"math/big"
	"sort"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/apd/v3"
	"golang.org/x/sync/singleflight"

	"github.com/msto63/bigmath/foundation/core/errors"
	"github.com/msto63/bigmath/foundation/core/log"
)

// Constant names
const (
	ConstPi   = "pi"
	ConstE    = "e"
	ConstLn2  = "ln2"
	ConstLn3  = "ln3"
	ConstLn10 = "ln10"
)

// ConstantNames lists the cached constants in a stable order
var ConstantNames = []string{ConstPi, ConstE, ConstLn2, ConstLn3, ConstLn10}

const (
	// constantGuard is the working margin of constant computations
	constantGuard  = 10
	// constantSlack is how many of the guard digits an entry claims as exact
	constantSlack  = 6
	// roundingMargin is added to public requests so the final rounding
	// to the caller's mode sees digits beyond the last one kept
	roundingMargin = 4
	storeTimeout   = 5 * time.Second
)

type constantEntry struct {
	digits uint32
	value  *apd.Decimal
}

type constantSlot struct {
	entry   atomic.Pointer[constantEntry]
	compute func(digits uint32) (*apd.Decimal, error)
}

// ConstantCache holds the constants of one engine context
type ConstantCache struct {
	engine *EngineContext
	slots  map[string]*constantSlot
	group  singleflight.Group
}

func newConstantCache(e *EngineContext) *ConstantCache {
	cc := &ConstantCache{engine: e, slots: make(map[string]*constantSlot, len(ConstantNames))}
	cc.slots[ConstPi] = &constantSlot{compute: e.computePi}
	cc.slots[ConstE] = &constantSlot{compute: e.computeE}
	cc.slots[ConstLn2] = &constantSlot{compute: e.computeLn2}
	cc.slots[ConstLn3] = &constantSlot{compute: e.computeLn3}
	cc.slots[ConstLn10] = &constantSlot{compute: e.computeLn10}
	return cc
}

// get returns the constant rounded half-even to digits
func (cc *ConstantCache) get(name string, digits uint32) (*apd.Decimal, error) {
	slot, ok := cc.slots[name]
	if !ok {
		return nil, errors.InvalidInput(errors.ModuleMathx, "constant", name, "one of pi, e, ln2, ln3, ln10")
	}

	for {
		if entry := slot.entry.Load(); entry != nil && entry.digits >= digits {
			c := newCalc(name, work(digits))
			return c.round(entry.value), c.err
		}

		_, err, _ := cc.group.Do(name, func() (interface{}, error) {
			return nil, cc.recompute(name, slot, digits)
		})
		if err != nil {
			return nil, err
		}
	}
}

func (cc *ConstantCache) recompute(name string, slot *constantSlot, digits uint32) error {
	if entry := slot.entry.Load(); entry != nil && entry.digits >= digits {
		return nil
	}

	timer := cc.engine.logger.StartTimer("constant " + name).WithLevel(log.LevelDebug).WithField("digits", digits)
	value, err := slot.compute(digits + constantGuard)
	if err != nil {
		timer.StopWithError(err)
		return err
	}
	timer.Stop()

	entry := &constantEntry{digits: digits + constantSlack, value: value}
	if !cc.publish(slot, entry) {
		return nil
	}
	cc.persist(name, entry)
	return nil
}

// publish stores entry unless a longer one is already present
func (cc *ConstantCache) publish(slot *constantSlot, entry *constantEntry) bool {
	for {
		current := slot.entry.Load()
		if current != nil && current.digits >= entry.digits {
			return false
		}
		if slot.entry.CompareAndSwap(current, entry) {
			return true
		}
	}
}

func (cc *ConstantCache) persist(name string, entry *constantEntry) {
	store := cc.engine.store
	if store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	stored := StoredConstant{Name: name, Digits: entry.digits, Value: entry.value.Text('f')}
	if err := store.SaveConstant(ctx, stored); err != nil {
		cc.engine.logger.WarnWithErr("failed to persist constant", err, log.Fields{"constant": name, "digits": entry.digits})
	}
}

// seed loads persisted constants; unusable rows are skipped
func (cc *ConstantCache) seed(store ConstantStore) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	stored, err := store.LoadConstants(ctx)
	if err != nil {
		cc.engine.logger.WarnWithErr("failed to load constants", err)
		return
	}
	for _, sc := range stored {
		slot, ok := cc.slots[sc.Name]
		if !ok || sc.Digits == 0 {
			continue
		}
		value, parseErr := ParseDecimal(sc.Value)
		if parseErr != nil {
			cc.engine.logger.Warn("skipping stored constant", log.Fields{"constant": sc.Name, "error": parseErr.Error()})
			continue
		}
		if cc.publish(slot, &constantEntry{digits: sc.Digits, value: value}) {
			cc.engine.logger.Debug("constant loaded", log.Fields{"constant": sc.Name, "digits": sc.Digits})
		}
	}
}

func (cc *ConstantCache) digits() map[string]uint32 {
	result := make(map[string]uint32, len(cc.slots))
	for name, slot := range cc.slots {
		if entry := slot.entry.Load(); entry != nil {
			result[name] = entry.digits
		}
	}
	return result
}

// Pi returns π rounded to p
func (e *EngineContext) Pi(p PrecisionSpec) (*apd.Decimal, error) {
	return e.call(ConstPi, p, func() (*apd.Decimal, error) {
		return e.constants.get(ConstPi, p.Digits+roundingMargin)
	})
}

// E returns Euler's number rounded to p
func (e *EngineContext) E(p PrecisionSpec) (*apd.Decimal, error) {
	return e.call(ConstE, p, func() (*apd.Decimal, error) {
		return e.constants.get(ConstE, p.Digits+roundingMargin)
	})
}

// Ln2 returns the natural logarithm of 2 rounded to p
func (e *EngineContext) Ln2(p PrecisionSpec) (*apd.Decimal, error) {
	return e.call(ConstLn2, p, func() (*apd.Decimal, error) {
		return e.constants.get(ConstLn2, p.Digits+roundingMargin)
	})
}

// Ln10 returns the natural logarithm of 10 rounded to p
func (e *EngineContext) Ln10(p PrecisionSpec) (*apd.Decimal, error) {
	return e.call(ConstLn10, p, func() (*apd.Decimal, error) {
		return e.constants.get(ConstLn10, p.Digits+roundingMargin)
	})
}

// Constant returns the named constant rounded to p
func (e *EngineContext) Constant(name string, p PrecisionSpec) (*apd.Decimal, error) {
	return e.call(name, p, func() (*apd.Decimal, error) {
		return e.constants.get(name, p.Digits+roundingMargin)
	})
}

// ConstantDigits returns the cached digits per constant, sorted by name
func (e *EngineContext) ConstantDigits() []StoredConstant {
	digits := e.constants.digits()
	result := make([]StoredConstant, 0, len(digits))
	for name, d := range digits {
		result = append(result, StoredConstant{Name: name, Digits: d})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

func (e *EngineContext) pi(digits uint32) (*apd.Decimal, error) {
	return e.constants.get(ConstPi, digits)
}

func (e *EngineContext) ln2(digits uint32) (*apd.Decimal, error) {
	return e.constants.get(ConstLn2, digits)
}

func (e *EngineContext) ln3(digits uint32) (*apd.Decimal, error) {
	return e.constants.get(ConstLn3, digits)
}

func (e *EngineContext) ln10(digits uint32) (*apd.Decimal, error) {
	return e.constants.get(ConstLn10, digits)
}

// chudnovskyDenominator is 640320^3/24
var chudnovskyDenominator = apd.New(10939058860032000, 0)

// computePi sums the Chudnovsky series, about 14 digits per term
func (e *EngineContext) computePi(digits uint32) (*apd.Decimal, error) {
	c := newCalc(ConstPi, work(digits))
	iterations := int64(digits+13)/14 + 1

	ak := decimalOne()
	sumA := decimalOne()
	sumB := new(apd.Decimal)
	for k := int64(1); k <= iterations; k++ {
		num, cube := chudnovskyFactors(k)
		den := c.mul(cube, chudnovskyDenominator)
		ak = c.quo(c.mul(ak, num), den)
		sumA = c.add(sumA, ak)
		sumB = c.add(sumB, c.mulInt(ak, k))
	}

	root, err := e.sqrt(apd.New(10005, 0), digits)
	if err != nil {
		return nil, err
	}
	total := c.add(c.mulInt(sumA, 13591409), c.mulInt(sumB, 545140134))
	result := c.quo(c.mulInt(root, 426880), total)
	return result, c.err
}

// chudnovskyFactors returns -(6k-5)(2k-1)(6k-1) and k³ on big.Int; the
// first leaves int64 past k ≈ 5·10^5.
func chudnovskyFactors(k int64) (num, cube *apd.Decimal) {
	bk := big.NewInt(k)
	n := new(big.Int).Sub(new(big.Int).Mul(bk, big.NewInt(6)), big.NewInt(5))
	n.Mul(n, new(big.Int).Sub(new(big.Int).Lsh(bk, 1), bigOne))
	n.Mul(n, new(big.Int).Sub(new(big.Int).Mul(bk, big.NewInt(6)), bigOne))
	n.Neg(n)
	c := new(big.Int).Mul(bk, bk)
	c.Mul(c, bk)
	return decimalFromBig(n, 0), decimalFromBig(c, 0)
}

func (e *EngineContext) computeE(digits uint32) (*apd.Decimal, error) {
	return e.calcs().Exp.calculate(decimalOne(), digits)
}

// atanhOfInverse returns 2·atanh(1/n) = ln((n+1)/(n-1))
func (e *EngineContext) atanhOfInverse(n int64, digits uint32) (*apd.Decimal, error) {
	c := newCalc(ConstLn2, work(digits+2))
	z := c.quo(decimalOne(), apd.New(n, 0))
	if c.err != nil {
		return nil, c.err
	}
	v, err := e.calcs().Atanh.calculate(z, digits+2)
	if err != nil {
		return nil, err
	}
	return c.mulInt(v, 2), c.err
}

// computeLn2 uses ln2 = 2·atanh(1/3)
func (e *EngineContext) computeLn2(digits uint32) (*apd.Decimal, error) {
	return e.atanhOfInverse(3, digits)
}

// computeLn3 uses ln3 = ln2 + ln(3/2) = ln2 + 2·atanh(1/5)
func (e *EngineContext) computeLn3(digits uint32) (*apd.Decimal, error) {
	l2, err := e.ln2(digits)
	if err != nil {
		return nil, err
	}
	l32, err := e.atanhOfInverse(5, digits)
	if err != nil {
		return nil, err
	}
	c := newCalc(ConstLn3, work(digits))
	return c.add(l2, l32), c.err
}

// computeLn10 uses ln10 = 3·ln2 + ln(5/4) = 3·ln2 + 2·atanh(1/9)
func (e *EngineContext) computeLn10(digits uint32) (*apd.Decimal, error) {
	l2, err := e.ln2(digits + 1)
	if err != nil {
		return nil, err
	}
	l54, err := e.atanhOfInverse(9, digits)
	if err != nil {
		return nil, err
	}
	c := newCalc(ConstLn10, work(digits))
	return c.add(c.mulInt(l2, 3), l54), c.err
}
