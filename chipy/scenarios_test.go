package chipy_test

import (
	"strings"
	"testing"

	"gopkg.in/check.v1"

	"github.com/chipy-lang/chipy"
	"github.com/chipy-lang/chipy/chiptest"
)

func Test(t *testing.T) { check.TestingT(t) }

type ScenarioSuite struct{}

func init() { check.Suite(&ScenarioSuite{}) }

// The scenarios below are the literal end-to-end table from spec §8.

func (s *ScenarioSuite) TestComparisonAgainstNegativeOne(c *check.C) {
	chiptest.From(c).RunTrue("i = 0\nreturn i > -1")
}

func (s *ScenarioSuite) TestListIndexing(c *check.C) {
	chiptest.From(c).RunTrue(
		"arr = [5,4,1337,2]\n" +
			"if arr[2] == 1337:\n" +
			"    return True\n" +
			"return False\n")
}

func (s *ScenarioSuite) TestForLoopAugmentedAssign(c *check.C) {
	chiptest.From(c).RunTrue(
		"l = [1,2,3]\n" +
			"res = 0\n" +
			"for i in l:\n" +
			"    res += i\n" +
			"return res == 6\n")
}

func (s *ScenarioSuite) TestDictItemsTupleUnpack(c *check.C) {
	chiptest.From(c).RunTrue(
		"res = 0\n" +
			"dict = {'a':1, 'b':2}\n" +
			"for k,v in dict.items():\n" +
			"    if k == 'b':\n" +
			"        res = v\n" +
			"return res == 2\n")
}

func (s *ScenarioSuite) TestBreakInsideRange(c *check.C) {
	chiptest.From(c).RunTrue(
		"a = 5\n" +
			"for _ in range(10):\n" +
			"    a += 1\n" +
			"    break\n" +
			"return a == 6\n")
}

func (s *ScenarioSuite) TestPreBoundStringIfElse(c *check.C) {
	chiptest.From(c).AddString("op_type", "put").RunFalse(
		"if op_type == 'put':\n" +
			"    return False\n" +
			"else:\n" +
			"    return True\n")
}

func (s *ScenarioSuite) TestRandModule(c *check.C) {
	chiptest.From(c).RunTrue(
		"from rand import randint\n" +
			"r = randint(0,10)\n" +
			"return r >= 0 and r <= 10\n")
}

// Boundary behaviour (spec §8).

func (s *ScenarioSuite) TestRangeZeroNeverEntersBody(c *check.C) {
	chiptest.From(c).RunTrue(
		"count = 0\n" +
			"for x in range(0):\n" +
			"    count += 1\n" +
			"return count == 0\n")
}

func (s *ScenarioSuite) TestListIndexOutOfRange(c *check.C) {
	chiptest.From(c).RunFails(
		"l = [1,2,3]\nreturn l[3]\n", "index-out-of-range")
}

func (s *ScenarioSuite) TestWriteThroughAssignment(c *check.C) {
	chiptest.From(c).RunTrue(
		"a = 1\n" +
			"for _ in range(1):\n" +
			"    a = 2\n" +
			"return a == 2\n")
}

// Round-trip / idempotence (spec §8).

func (s *ScenarioSuite) TestIntStrRoundTrip(c *check.C) {
	chiptest.From(c).RunTrue("i = 42\nreturn int(str(i)) == i\n")
}

func (s *ScenarioSuite) TestDocumentRoundTrip(c *check.C) {
	d := chipy.NewDictionary()
	d.Insert("a", chipy.Integer(1))
	d.Insert("b", chipy.NewList([]chipy.Value{chipy.String("x"), chipy.Integer(2)}))
	doc, err := chipy.ValueToDocument(d)
	c.Assert(err, check.IsNil)
	back, err := chipy.DocumentToValue(doc)
	c.Assert(err, check.IsNil)
	roundTripped, ok := back.(*chipy.Dictionary)
	c.Assert(ok, check.Equals, true)
	c.Assert(roundTripped.Get("a"), check.Equals, chipy.Integer(1))
}

// Error-kind coverage (spec §7).

func (s *ScenarioSuite) TestNameNotFound(c *check.C) {
	chiptest.From(c).RunFails("return undefined_name\n", "name-not-found")
}

func (s *ScenarioSuite) TestTypeErrorOnBadAdd(c *check.C) {
	chiptest.From(c).RunFails("return 1 + 'x'\n", "type-error")
}

func (s *ScenarioSuite) TestUnimplementedBinaryOp(c *check.C) {
	chiptest.From(c).RunFails("return 4 * 2\n", "unimplemented-op")
}

func (s *ScenarioSuite) TestLoopControlOutsideLoop(c *check.C) {
	chiptest.From(c).RunFails("break\nreturn True\n", "loop-control-outside-loop")
}

func (s *ScenarioSuite) TestResultTypeErrorOnNonBool(c *check.C) {
	chiptest.From(c).RunFails("return 1\n", "result-type-error")
}

// Cursor-alignment (spec §8): a dead if-branch, a short-circuited
// bool-op, and a broken loop must each leave the decoder exactly where a
// skip of that same construct would, so the statement(s) that follow
// still execute correctly.

func (s *ScenarioSuite) TestDeadIfBranchDoesNotDesyncCursor(c *check.C) {
	chiptest.From(c).RunTrue(
		"x = 1\n" +
			"y = 0\n" +
			"if x == 2:\n" +
			"    y = 100\n" +
			"else:\n" +
			"    y = 1\n" +
			"z = y + 1\n" +
			"return z == 2\n")
}

func (s *ScenarioSuite) TestElifChainDesugarsWithoutDesync(c *check.C) {
	chiptest.From(c).RunTrue(
		"x = 2\n" +
			"r = ''\n" +
			"if x == 1:\n" +
			"    r = 'a'\n" +
			"elif x == 2:\n" +
			"    r = 'b'\n" +
			"else:\n" +
			"    r = 'c'\n" +
			"return r == 'b'\n")
}

func (s *ScenarioSuite) TestShortCircuitAndSkipsRemainingOperands(c *check.C) {
	chiptest.From(c).RunFalse(
		"a = False\n" +
			"b = a and (1 + 'x' == 1)\n" + // if the RHS were executed it would type-error
			"return b\n")
}

func (s *ScenarioSuite) TestBreakFollowedByTrailingStatementsStillExecute(c *check.C) {
	chiptest.From(c).RunTrue(
		"total = 0\n" +
			"for i in range(5):\n" +
			"    if i == 2:\n" +
			"        break\n" +
			"    total += i\n" +
			"total += 100\n" +
			"return total == 101\n")
}

func (s *ScenarioSuite) TestReturnInsideLoopSkipsRemainingIterationsAndStatements(c *check.C) {
	chiptest.From(c).RunTrue(
		"for i in range(5):\n" +
			"    if i == 1:\n" +
			"        return True\n" +
			"return False\n")
}

func (s *ScenarioSuite) TestWhileLoopReEvaluatesTestEachIteration(c *check.C) {
	chiptest.From(c).RunTrue(
		"n = 0\n" +
			"while n < 5:\n" +
			"    n += 1\n" +
			"return n == 5\n")
}

func (s *ScenarioSuite) TestContinueSkipsRestOfIteration(c *check.C) {
	chiptest.From(c).RunTrue(
		"total = 0\n" +
			"for i in range(5):\n" +
			"    if i == 2:\n" +
			"        continue\n" +
			"    total += i\n" +
			"return total == 8\n") // 0+1+3+4
}

// TestArenaExhaustionOnLargeLiteral exercises the §4.1 memory budget from
// real script execution, not just an oversized compiled program: the
// arena is sized to comfortably hold the compiled bytecode (which embeds
// the string literal's bytes once) but not the second charge evalExprTagged
// makes when constructing the runtime String value at execution time.
func (s *ScenarioSuite) TestArenaExhaustionOnLargeLiteral(c *check.C) {
	big := strings.Repeat("x", 4000)
	r := chiptest.From(c).WithOption(chipy.WithArenaSize(4500))
	r.RunFails(
		"s = \""+big+"\"\n"+
			"return True\n",
		"out-of-memory")
}

func (s *ScenarioSuite) TestMaxStatementsOption(c *check.C) {
	r := chiptest.From(c).WithOption(chipy.WithMaxStatements(3))
	r.RunFails(
		"a = 0\n"+
			"for i in range(100):\n"+
			"    a += 1\n"+
			"return a == 100\n",
		"maximum of 3 statements")
}
