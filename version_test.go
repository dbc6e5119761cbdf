package releasefeed

import (
	"fmt"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareVersions(t *testing.T) {
	fixtures := []struct {
		v1, v2   string
		opts     CompareOptions
		expected int
	}{
		{"1.0.0", "1.0.0", CompareOptions{}, 0},
		{"1.9.9", "2.0.0", CompareOptions{}, -1},
		{"2.0.1", "2.0.0", CompareOptions{}, 1},
		{"1.10", "1.9", CompareOptions{}, 1},
		{"1.01", "1.1", CompareOptions{}, 0},
		{"1.2", "1.2.0", CompareOptions{}, -1},
		{"1.2.0", "1.2", CompareOptions{}, 1},
		{"1.2", "1.2.0", CompareOptions{ZeroExtend: true}, 0},
		{"1.2.0.0", "1.2", CompareOptions{ZeroExtend: true}, 0},
		{"1.2", "1.2.1", CompareOptions{ZeroExtend: true}, -1},
		{"1.0x", "1.0", CompareOptions{Lexicographical: true}, 1},
		{"1.0a", "1.0b", CompareOptions{Lexicographical: true}, -1},
		// plain string comparison: "10" sorts before "9"
		{"1.10", "1.9", CompareOptions{Lexicographical: true}, -1},
		{"99999999999999999999.1", "99999999999999999999.2", CompareOptions{}, -1},
	}

	for _, fixture := range fixtures {
		t.Run(fmt.Sprintf("%s_%s_%+v", fixture.v1, fixture.v2, fixture.opts), func(t *testing.T) {
			cmp, err := CompareVersions(fixture.v1, fixture.v2, fixture.opts)
			require.NoError(t, err)
			assert.Equal(t, fixture.expected, cmp)
		})
	}
}

func TestIncomparableVersions(t *testing.T) {
	fixtures := []struct {
		v1, v2 string
		opts   CompareOptions
	}{
		{"1.x", "1.0", CompareOptions{}},
		{"1.0", "1.0b", CompareOptions{}},
		{"v1.0", "1.0", CompareOptions{}},
		{"", "1.0", CompareOptions{}},
		{"1..0", "1.0", CompareOptions{}},
		{"1.0-rc1", "1.0", CompareOptions{}},
		{"1.-1", "1.0", CompareOptions{ZeroExtend: true}},
		{"1.x", "1.0", CompareOptions{ZeroExtend: true}},
		{"1.a0", "1.0", CompareOptions{Lexicographical: true}},
		// a part must start with a digit, even in lexicographical mode
		{"1.x", "1.0", CompareOptions{Lexicographical: true}},
		{"1.0", "", CompareOptions{Lexicographical: true}},
	}

	for _, fixture := range fixtures {
		t.Run(fmt.Sprintf("%q_%q", fixture.v1, fixture.v2), func(t *testing.T) {
			_, err := CompareVersions(fixture.v1, fixture.v2, fixture.opts)
			assert.ErrorIs(t, err, ErrIncomparableVersion)
		})
	}
}

var versionSamples = []string{
	"0.0.0", "0.0.1", "0.1.0", "0.9.9", "0.10.0", "1.0.0", "1.0.10", "1.2.3",
	"1.10.0", "2.0.0", "2.0.1", "10.0.0", "10.1.9",
}

func TestCompareVersionsIsReflexive(t *testing.T) {
	for _, version := range append(versionSamples, "1", "1.2", "1.2.3.4") {
		for _, opts := range []CompareOptions{{}, {ZeroExtend: true}, {Lexicographical: true}} {
			cmp, err := CompareVersions(version, version, opts)
			require.NoError(t, err)
			assert.Equal(t, 0, cmp, version)
		}
	}
}

func TestCompareVersionsIsAntisymmetric(t *testing.T) {
	samples := append(versionSamples, "1", "1.2", "1.2.3.4")
	for _, v1 := range samples {
		for _, v2 := range samples {
			for _, opts := range []CompareOptions{{}, {ZeroExtend: true}} {
				left, err := CompareVersions(v1, v2, opts)
				require.NoError(t, err)
				right, err := CompareVersions(v2, v1, opts)
				require.NoError(t, err)
				assert.Equal(t, -left, right, "%s vs %s %+v", v1, v2, opts)
			}
		}
	}
}

// On three numeric parts, the comparison must agree with semantic versioning
func TestCompareVersionsAgreesWithSemver(t *testing.T) {
	for _, v1 := range versionSamples {
		for _, v2 := range versionSamples {
			expected := semver.MustParse(v1).Compare(semver.MustParse(v2))

			cmp, err := CompareVersions(v1, v2, CompareOptions{})
			require.NoError(t, err)
			assert.Equal(t, expected, cmp, "%s vs %s", v1, v2)

			cmp, err = CompareVersions(v1, v2, CompareOptions{ZeroExtend: true})
			require.NoError(t, err)
			assert.Equal(t, expected, cmp, "%s vs %s (zero extend)", v1, v2)
		}
	}
}
