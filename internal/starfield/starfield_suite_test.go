package starfield_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestStarfield(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Starfield Suite")
}
