package datefmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMaskRejectsWrongLength(t *testing.T) {
	_, err := ParseMask("d/m/yy")
	assert.Error(t, err)
}

func TestParseMaskRejectsDuplicateToken(t *testing.T) {
	_, err := ParseMask("d/d/y")
	assert.Error(t, err)
}

func TestParseAndFormatRoundTrip(t *testing.T) {
	m, err := ParseMask("d/m/y")
	require.NoError(t, err)

	d, err := m.Parse("5/3/2024")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: 3, Day: 5}, d)
	assert.Equal(t, "2024-03-05", d.ISO())
}

func TestParseAlternateOrderMask(t *testing.T) {
	m, err := ParseMask("y-m-d")
	require.NoError(t, err)

	d, err := m.Parse("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: 3, Day: 5}, d)
}

func TestParseMonthNamePrefix(t *testing.T) {
	m, err := ParseMask("d/m/y")
	require.NoError(t, err)

	d, err := m.Parse("5/Mar/2024")
	require.NoError(t, err)
	assert.Equal(t, 3, d.Month)

	d, err = m.Parse("5/March/2024")
	require.NoError(t, err)
	assert.Equal(t, 3, d.Month)
}

func TestParseMonthPrefixShorterThanThreeIsError(t *testing.T) {
	m, err := ParseMask("d/m/y")
	require.NoError(t, err)

	_, err = m.Parse("5/Ju/2024")
	assert.Error(t, err)
}

func TestParseTwoDigitYearWrap(t *testing.T) {
	m, err := ParseMask("d/m/y")
	require.NoError(t, err)

	d, err := m.Parse("1/1/30")
	require.NoError(t, err)
	assert.Equal(t, 2030, d.Year)

	d, err = m.Parse("1/1/60")
	require.NoError(t, err)
	assert.Equal(t, 1960, d.Year)
}

func TestParseRejectsInvalidCalendarDate(t *testing.T) {
	m, err := ParseMask("d/m/y")
	require.NoError(t, err)

	_, err = m.Parse("29/2/2023")
	assert.Error(t, err)

	_, err = m.Parse("31/4/2024")
	assert.Error(t, err)
}

func TestParseAcceptsLeapDay(t *testing.T) {
	m, err := ParseMask("d/m/y")
	require.NoError(t, err)

	_, err = m.Parse("29/2/2024")
	assert.NoError(t, err)
}

func TestFormatDirectives(t *testing.T) {
	d := Date{Year: 2024, Month: 3, Day: 5}

	out, err := Format(d, "yyyy-mm-dd", defaultMonthNames)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", out)

	out, err = Format(d, "d/m/y", defaultMonthNames)
	require.NoError(t, err)
	assert.Equal(t, "5/3/2024", out)

	out, err = Format(d, "mmm d, yyyy", defaultMonthNames)
	require.NoError(t, err)
	assert.Equal(t, "Mar 5, 2024", out)

	out, err = Format(d, "M d, yyyy", defaultMonthNames)
	require.NoError(t, err)
	assert.Equal(t, "March 5, 2024", out)
}

func TestFormatWeekdayDirectives(t *testing.T) {
	d := Date{Year: 2024, Month: 3, Day: 5} // a Tuesday

	out, err := Format(d, "W", defaultMonthNames)
	require.NoError(t, err)
	assert.Equal(t, "Tuesday", out)

	out, err = Format(d, "w", defaultMonthNames)
	require.NoError(t, err)
	assert.Equal(t, "Tue", out)
}

func TestFormatUnknownDirectiveIsError(t *testing.T) {
	_, err := Format(Date{Year: 2024, Month: 1, Day: 1}, "mmmm", defaultMonthNames)
	assert.Error(t, err)
}
