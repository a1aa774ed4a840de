package mean

import (
	"log"
	"math"
	"math/rand"
	"os"
	"strconv"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	. "gopkg.in/check.v1"

	"github.com/dropbox/gomean/errors"
	. "github.com/dropbox/gomean/gocheck2"
	"github.com/dropbox/gomean/math2"
)

var (
	rng *rand.Rand
)

func init() {
	seed := os.Getenv("TEST_RANDOM_SEED")
	if seed == "" {
		seed = "99"
	}
	seedInt, err := strconv.ParseInt(seed, 0, 64)
	if err != nil {
		log.Fatalf("failed to parse random seed %q: %v", seed, err)
	}
	rng = rand.New(rand.NewSource(seedInt))
}

func Test(t *testing.T) {
	TestingT(t)
}

type MeanSuite struct {
}

var _ = Suite(&MeanSuite{})

var allPrecisions = []Precision{Float64, Compensated, Exact, Float32}

// Precisions which are expected to be accurate.
var widePrecisions = []Precision{Float64, Compensated, Exact}

func randomValues(n int, lo float64, hi float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = lo + rng.Float64()*(hi-lo)
	}
	return values
}

func mustMean(c *C, values []float64, p Precision) float64 {
	m, err := MeanWithOptions(values, Options{Precision: p})
	if err != nil {
		c.Fatalf("%v: %v\n%s", p, err, spew.Sdump(values))
	}
	return m
}

// Reference mean, summed exactly and divided with 30 digits.
func decimalMean(values []float64) float64 {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	return sum.DivRound(decimal.NewFromInt(int64(len(values))), 30).InexactFloat64()
}

func (s *MeanSuite) TestSmallExamples(c *C) {
	for _, p := range allPrecisions {
		c.Assert(mustMean(c, []float64{1, 2, 3}, p), Equals, 2.0)
		c.Assert(mustMean(c, []float64{42, 34}, p), Equals, 38.0)
		c.Assert(mustMean(c, []float64{-7}, p), Equals, -7.0)
		c.Assert(mustMean(c, []float64{-3, 3}, p), Equals, 0.0)
	}

	m, err := Mean([]float64{42, 34})
	c.Assert(err, IsNil)
	c.Assert(m, Equals, 38.0)
}

func (s *MeanSuite) TestEmptyInput(c *C) {
	for _, p := range allPrecisions {
		_, err := MeanWithOptions([]float64{}, Options{Precision: p})
		c.Assert(err, Equals, ErrEmptyInput)
		c.Assert(errors.IsInvalidArgument(err), IsTrue)
	}

	_, err := Mean(nil)
	c.Assert(err, Equals, ErrEmptyInput)
	_, err = MeanOf([]int(nil))
	c.Assert(err, Equals, ErrEmptyInput)
}

func (s *MeanSuite) TestIntegerAndNarrowElements(c *C) {
	m, err := MeanOf([]int{42, 34})
	c.Assert(err, IsNil)
	c.Assert(m, Equals, 38.0)

	// Summing in the element type would overflow.
	m, err = MeanOf([]uint8{255, 255, 255})
	c.Assert(err, IsNil)
	c.Assert(m, Equals, 255.0)

	m, err = MeanOf([]int8{127, 127, -128})
	c.Assert(err, IsNil)
	c.Assert(m, AlmostEquals, 42.0, 1e-15)

	m, err = MeanOf([]int64{1, 2})
	c.Assert(err, IsNil)
	c.Assert(m, Equals, 1.5)

	m, err = MeanOf([]float32{1.5, 2.5})
	c.Assert(err, IsNil)
	c.Assert(m, Equals, 2.0)
}

func (s *MeanSuite) TestEqualValues(c *C) {
	for i := 0; i < 200; i++ {
		v := (rng.Float64() - 0.5) * math.Pow(10, float64(rng.Intn(20)-10))
		values := make([]float64, 1+rng.Intn(100))
		for j := range values {
			values[j] = v
		}
		for _, p := range widePrecisions {
			c.Assert(mustMean(c, values, p), Equals, v)
		}
	}
}

func (s *MeanSuite) TestWithinBounds(c *C) {
	for i := 0; i < 200; i++ {
		values := randomValues(1+rng.Intn(500), -1000, 1000)
		min := floats.Min(values)
		max := floats.Max(values)
		for _, p := range allPrecisions {
			m := mustMean(c, values, p)
			c.Assert(min <= m && m <= max, IsTrue,
				Commentf("%v: %v not in [%v, %v]", p, m, min, max))
		}
	}
}

func (s *MeanSuite) TestPermutationInvariance(c *C) {
	for i := 0; i < 50; i++ {
		values := randomValues(1+rng.Intn(1000), -1e6, 1e6)
		before := make(map[Precision]float64)
		for _, p := range widePrecisions {
			before[p] = mustMean(c, values, p)
		}

		rng.Shuffle(len(values), func(i, j int) {
			values[i], values[j] = values[j], values[i]
		})

		c.Assert(mustMean(c, values, Exact), Equals, before[Exact])
		c.Assert(mustMean(c, values, Compensated), AlmostEquals, before[Compensated], 1e-12)
		c.Assert(mustMean(c, values, Float64), AlmostEquals, before[Float64], 1e-7)
	}
}

func (s *MeanSuite) TestCancellation(c *C) {
	values := []float64{1e100, 1.0, -1e100}

	c.Assert(mustMean(c, values, Float64), Equals, 0.0)
	c.Assert(mustMean(c, values, Compensated), Equals, 1.0/3)
	c.Assert(mustMean(c, values, Exact), Equals, 1.0/3)
}

func (s *MeanSuite) TestNearOverflow(c *C) {
	values := []float64{1.7e308, 1.7e308, 0}

	// The sum does not fit in a float64, the mean does.
	c.Assert(mustMean(c, values, Exact), AlmostEquals, 1.7e308/3*2, 1e-15)
	for _, p := range []Precision{Float64, Compensated, Float32} {
		m := mustMean(c, values, p)
		c.Assert(math.IsInf(m, 1), IsTrue, Commentf("%v: got %v", p, m))
	}

	lowest := []float64{-math.MaxFloat64, -math.MaxFloat64}
	c.Assert(mustMean(c, lowest, Exact), Equals, -math.MaxFloat64)
	c.Assert(math.IsInf(mustMean(c, lowest, Float64), -1), IsTrue)
	c.Assert(math.IsInf(mustMean(c, lowest, Compensated), -1), IsTrue)

	// Large but representable sums are unaffected.
	quarter := []float64{math.MaxFloat64 / 4, math.MaxFloat64 / 4}
	for _, p := range widePrecisions {
		c.Assert(mustMean(c, quarter, p), Equals, math.MaxFloat64/4)
	}
}

func (s *MeanSuite) TestSubnormals(c *C) {
	tiny := math.SmallestNonzeroFloat64
	values := []float64{tiny, 3 * tiny}
	for _, p := range widePrecisions {
		c.Assert(mustMean(c, values, p), Equals, 2*tiny, Commentf("%v", p))
	}

	values = []float64{tiny, -tiny, tiny, -tiny}
	for _, p := range widePrecisions {
		c.Assert(mustMean(c, values, p), Equals, 0.0, Commentf("%v", p))
	}
}

// Bounds and order independence for a non-float64 element type.  The
// bounds come from the elements themselves, not from a float64 copy.
func checkElementProperties[T math2.Number](c *C, values []T) {
	lo, hi, ok := math2.MinMax(values)
	c.Assert(ok, IsTrue)

	before := make(map[Precision]float64)
	for _, p := range widePrecisions {
		m, err := MeanWithOptions(values, Options{Precision: p})
		c.Assert(err, IsNil)
		c.Assert(float64(lo) <= m && m <= float64(hi), IsTrue,
			Commentf("%T %v: %v not in [%v, %v]", values, p, m, lo, hi))
		before[p] = m
	}

	m, err := MeanOf(values)
	c.Assert(err, IsNil)
	c.Assert(m, Equals, before[Float64])

	shuffled := append([]T(nil), values...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	for _, p := range widePrecisions {
		m, err := MeanWithOptions(shuffled, Options{Precision: p})
		c.Assert(err, IsNil)
		if p == Exact {
			c.Assert(m, Equals, before[p])
		} else {
			c.Assert(m, AlmostEquals, before[p], 1e-9)
		}
	}
}

func (s *MeanSuite) TestElementTypeProperties(c *C) {
	for i := 0; i < 50; i++ {
		n := 1 + rng.Intn(500)

		ints := make([]int, n)
		small := make([]int8, n)
		unsigned := make([]uint16, n)
		narrow := make([]float32, n)
		for j := 0; j < n; j++ {
			ints[j] = rng.Intn(2000001) - 1000000
			small[j] = int8(rng.Intn(256) - 128)
			unsigned[j] = uint16(rng.Intn(65536))
			narrow[j] = float32(rng.Float64()*2000 - 1000)
		}

		checkElementProperties(c, ints)
		checkElementProperties(c, small)
		checkElementProperties(c, unsigned)
		checkElementProperties(c, narrow)
	}
}

func (s *MeanSuite) TestLargeSequence(c *C) {
	if testing.Short() {
		c.Skip("large sequence in short mode")
	}

	n := 1000000
	values := randomValues(n, 1000, 2000)
	expected := decimalMean(values)

	for _, p := range widePrecisions {
		c.Assert(mustMean(c, values, p), AlmostEquals, expected, 1e-6)
	}
	c.Assert(mustMean(c, values, Compensated), AlmostEquals, expected, 1e-14)
	c.Assert(stat.Mean(values, nil), AlmostEquals, expected, 1e-9)
}

func (s *MeanSuite) TestFloat32AccumulatorDrifts(c *C) {
	if testing.Short() {
		c.Skip("large sequence in short mode")
	}

	n := 1000000
	values := make([]float64, n)
	for i := range values {
		if i%2 == 0 {
			values[i] = 0.1
		} else {
			values[i] = 0.3
		}
	}

	wide := mustMean(c, values, Float64)
	c.Assert(wide, AlmostEquals, 0.2, 1e-9)

	narrow := mustMean(c, values, Float32)
	c.Assert(math.Abs(narrow-0.2)/0.2 > 1e-4, IsTrue,
		Commentf("float32 accumulator mean %v unexpectedly accurate", narrow))
}
