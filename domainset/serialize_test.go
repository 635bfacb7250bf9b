package domainset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerializeRoundTrip(t *testing.T) {
	ds, err := Compile(sampleDomains)
	require.NoError(t, err)

	ser, err := ds.Serialize()
	require.NoError(t, err)
	require.Equal(t, ds.SerializedSize(), len(ser))

	back, err := FromSerialized(ser)
	require.NoError(t, err)

	for _, d := range sampleDomains {
		require.Equal(t, ds.Find(d), back.Find(d), d)
	}

	ser2, err := back.Serialize()
	require.NoError(t, err)
	require.Equal(t, ser, ser2)
}

func TestFromSerialized_RejectsBadMagic(t *testing.T) {
	ds, err := Compile(sampleDomains)
	require.NoError(t, err)
	ser, err := ds.Serialize()
	require.NoError(t, err)

	ser[0] ^= 0xFF
	_, err = FromSerialized(ser)
	require.ErrorIs(t, err, ErrBadValue)
}

func TestFromSerialized_RejectsTruncated(t *testing.T) {
	ds, err := Compile(sampleDomains)
	require.NoError(t, err)
	ser, err := ds.Serialize()
	require.NoError(t, err)

	_, err = FromSerialized(ser[:len(ser)-10])
	require.Error(t, err)
}

func TestPlaceSizeFromSerialized(t *testing.T) {
	ds, err := Compile(sampleDomains)
	require.NoError(t, err)
	ser, err := ds.Serialize()
	require.NoError(t, err)

	size, err := PlaceSizeFromSerialized(ser)
	require.NoError(t, err)
	require.Equal(t, len(ser), size)
}

func TestPlaceSize_UpperBoundsCompile(t *testing.T) {
	ds, err := Compile(sampleDomains)
	require.NoError(t, err)
	require.GreaterOrEqual(t, PlaceSize(sampleDomains), ds.Allocated())
}

func TestIntrospectionGetters(t *testing.T) {
	ds, err := Compile([]string{"example.com"})
	require.NoError(t, err)
	require.Equal(t, 1, ds.UsedTotal())
	require.Greater(t, ds.Buckets(), 0)
	require.Equal(t, headerBytes, HeaderBytes())
	require.Equal(t, ds.Buckets()*recordBytes, ds.TableBytes())
	require.NotEmpty(t, ds.String())
}
