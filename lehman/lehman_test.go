package lehman

import "testing"

func checkFactor(t *testing.T, n, f uint64) {
	t.Helper()
	if f == 0 {
		t.Fatalf("FindSingleFactor(%d): no factor found", n)
	}
	if f <= 1 || f >= n {
		t.Fatalf("FindSingleFactor(%d) = %d: not a nontrivial factor", n, f)
	}
	if n%f != 0 {
		t.Fatalf("FindSingleFactor(%d) = %d: does not divide n", n, f)
	}
}

func TestFindSingleFactorSmall(t *testing.T) {
	checkFactor(t, 9, FindSingleFactor(9))
}

func TestFindSingleFactorConcreteScenarios(t *testing.T) {
	cases := []uint64{
		5640012124823,
		5682546780292609,
	}
	for _, n := range cases {
		f := FindSingleFactor(n)
		checkFactor(t, n, f)
	}
}

func TestResidueBucketAndParityDemotion(t *testing.T) {
	tbl := getTable()
	for b, bucket := range tbl.buckets {
		for _, k := range bucket.k {
			odd := residueBucket(k)
			want := odd
			if k%2 == 0 {
				want = odd + 1
			}
			if want != b {
				t.Fatalf("k=%d: expected bucket %d, table places it in %d", k, want, b)
			}
		}
	}
}

func TestTableBucketsAreSortedAndBounded(t *testing.T) {
	tbl := getTable()
	for b, bucket := range tbl.buckets {
		boundary := uint64(KMax) * multiplier[b]
		prev := uint64(0)
		for _, k := range bucket.k {
			if k <= prev {
				t.Fatalf("bucket %d not strictly ascending at k=%d", b, k)
			}
			if k > boundary {
				t.Fatalf("bucket %d contains k=%d beyond its boundary %d", b, k, boundary)
			}
			prev = k
		}
	}
}
