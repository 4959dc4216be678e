package embedding_test

import (
	"testing"

	"github.com/skillforge/skillrec/internal/domain/embedding"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEmbed(t *testing.T) {
	Convey("Given the feature-hashing embedder", t, func() {
		Convey("When embedding a normal sentence", func() {
			vec := embedding.Embed("harden pipeline security checks", embedding.DefaultDims)

			Convey("Then the vector has the requested dimensionality", func() {
				So(vec, ShouldHaveLength, embedding.DefaultDims)
			})

			Convey("And it is unit L2 normalized", func() {
				So(embedding.Magnitude(vec), ShouldAlmostEqual, 1.0, 1e-6)
			})
		})

		Convey("When embedding the same text twice", func() {
			a := embedding.Embed("review terraform drift", 96)
			b := embedding.Embed("review terraform drift", 96)

			Convey("Then the vectors are identical", func() {
				So(a, ShouldResemble, b)
			})
		})

		Convey("When the text has no usable tokens", func() {
			vec := embedding.Embed("! ?", 96)

			Convey("Then the vector stays all-zero", func() {
				So(embedding.Magnitude(vec), ShouldEqual, 0)
			})
		})

		Convey("When dims is non-positive", func() {
			vec := embedding.Embed("anything at all", 0)

			Convey("Then the default dimensionality is used", func() {
				So(vec, ShouldHaveLength, embedding.DefaultDims)
			})
		})
	})
}

func TestCosine(t *testing.T) {
	Convey("Given cosine similarity", t, func() {
		v := embedding.Embed("database connection pooling", 96)

		Convey("Then a nonzero vector is fully similar to itself", func() {
			So(embedding.Cosine(v, v), ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("Then similarity of normalized vectors stays within [0, 1]", func() {
			w := embedding.Embed("canvas particle animation", 96)
			sim := embedding.Cosine(v, w)
			So(sim, ShouldBeGreaterThanOrEqualTo, 0)
			So(sim, ShouldBeLessThanOrEqualTo, 1)
		})

		Convey("Then mismatched lengths score zero", func() {
			So(embedding.Cosine(v, make([]float32, 32)), ShouldEqual, 0)
		})

		Convey("Then a zero-magnitude operand scores zero", func() {
			So(embedding.Cosine(v, make([]float32, 96)), ShouldEqual, 0)
			So(embedding.Cosine(make([]float32, 96), make([]float32, 96)), ShouldEqual, 0)
		})
	})
}

func TestHashToken(t *testing.T) {
	Convey("Given the token hash", t, func() {
		Convey("Then it matches the FNV-1a 32-bit reference values", func() {
			// Published FNV-1a test vectors.
			So(embedding.HashToken(""), ShouldEqual, uint32(2166136261))
			So(embedding.HashToken("a"), ShouldEqual, uint32(0xe40c292c))
		})

		Convey("Then distinct tokens usually land in distinct buckets", func() {
			So(embedding.HashToken("alpha"), ShouldNotEqual, embedding.HashToken("beta"))
		})
	})
}

func TestPackUnpack(t *testing.T) {
	Convey("Given the vector codec", t, func() {
		v := embedding.Embed("persisted skill vector", 96)

		Convey("When packing and unpacking", func() {
			out := embedding.Unpack(embedding.Pack(v))

			Convey("Then the round trip is lossless", func() {
				So(out, ShouldResemble, v)
			})
		})

		Convey("When the blob is malformed", func() {
			Convey("Then Unpack returns nil", func() {
				So(embedding.Unpack([]byte{1, 2, 3}), ShouldBeNil)
				So(embedding.Unpack(nil), ShouldBeNil)
			})
		})
	})
}
