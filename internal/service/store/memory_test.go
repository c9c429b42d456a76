package store

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/dhaniamnd/co2-reporter/internal/calculator"
	"github.com/dhaniamnd/co2-reporter/internal/model"
)

func sampleRecords(f model.EmissionFactors) []model.OutputRecord {
	return calculator.CalculateAll([]model.InputRecord{
		{Plant: "PlantA", Date: time.Date(2022, 1, 31, 0, 0, 0, 0, time.UTC), ClinkerTonnes: 100, KilnFuelGJ: 50, ElectricityMWh: 10},
		{Plant: "PlantB", Date: time.Date(2022, 2, 28, 0, 0, 0, 0, time.UTC), ClinkerTonnes: 200},
	}, f)
}

// TestNewMemoryStore 测试创建存储
func TestNewMemoryStore(t *testing.T) {
	store := NewMemoryStore(model.DefaultFactors())
	if store.Count() != 0 {
		t.Errorf("new store should be empty, got %d records", store.Count())
	}
	if store.Factors() != model.DefaultFactors() {
		t.Errorf("unexpected factors: %+v", store.Factors())
	}
}

// TestReplaceAndAppend 测试替换与追加
func TestReplaceAndAppend(t *testing.T) {
	f := model.DefaultFactors()
	store := NewMemoryStore(f)

	store.Replace(sampleRecords(f), []model.FileReport{{Filename: "a.xlsx"}})
	if store.Count() != 2 {
		t.Fatalf("want 2 records, got %d", store.Count())
	}

	store.Append(sampleRecords(f)[:1], []model.FileReport{{Filename: "b.xlsx"}})
	if store.Count() != 3 {
		t.Fatalf("want 3 records, got %d", store.Count())
	}
	if got := store.Records()[2].Plant; got != "PlantA" {
		t.Fatalf("append order broken, got %q", got)
	}
	if got := len(store.Reports()); got != 2 {
		t.Fatalf("want 2 reports, got %d", got)
	}

	store.Replace(sampleRecords(f)[1:], nil)
	if store.Count() != 1 || store.Records()[0].Plant != "PlantB" {
		t.Fatalf("replace did not reset working set: %+v", store.Records())
	}
}

// TestRecordsReturnsCopy 返回的切片修改不影响存储
func TestRecordsReturnsCopy(t *testing.T) {
	f := model.DefaultFactors()
	store := NewMemoryStore(f)
	store.Replace(sampleRecords(f), nil)

	recs := store.Records()
	recs[0].Plant = "changed"
	if store.Records()[0].Plant != "PlantA" {
		t.Fatal("store mutated through returned slice")
	}
}

// TestSetFactorsRecalculates 更新因子后全部重算
func TestSetFactorsRecalculates(t *testing.T) {
	store := NewMemoryStore(model.DefaultFactors())
	store.Replace(sampleRecords(model.DefaultFactors()), nil)

	unit := model.EmissionFactors{ProcessEF: 1, FuelEF: 1, GridEF: 1}
	recs := store.SetFactors(unit)
	if recs[0].TotalCO2 != 160 || recs[1].TotalCO2 != 200 {
		t.Fatalf("unexpected totals after recalculation: %v %v", recs[0].TotalCO2, recs[1].TotalCO2)
	}
	if store.Factors() != unit {
		t.Fatalf("factors not stored")
	}

	store.Clear()
	if store.Count() != 0 || store.Factors() != unit {
		t.Fatal("clear should drop records and keep factors")
	}
}

// TestConcurrentAccess 并发读写
func TestConcurrentAccess(t *testing.T) {
	f := model.DefaultFactors()
	store := NewMemoryStore(f)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.Append(sampleRecords(f), nil)
		}()
		go func() {
			defer wg.Done()
			_ = store.Records()
			_ = store.SetFactors(f)
		}()
	}
	wg.Wait()

	if store.Count() != 20 {
		t.Fatalf("want 20 records, got %d", store.Count())
	}
}

// TestReplaceAfterFactorChange 导入期间因子被修改，写入的记录按当前因子重算
func TestReplaceAfterFactorChange(t *testing.T) {
	old := model.DefaultFactors()
	store := NewMemoryStore(old)

	// 导入开始时读取的因子
	outs := sampleRecords(store.Factors())

	updated := model.EmissionFactors{ProcessEF: 1, FuelEF: 1, GridEF: 1}
	store.SetFactors(updated)

	store.Replace(outs, nil)
	store.Append(outs[:1], nil)

	records := store.Records()
	if len(records) != 3 {
		t.Fatalf("want 3 records, got %d", len(records))
	}
	for i, r := range records {
		want := calculator.Calculate(r.Input, updated)
		if r != want {
			t.Fatalf("record %d computed with stale factors: got %+v, want %+v", i, r, want)
		}
	}
	if records[0].ProcessCO2 != 100 {
		t.Fatalf("want processCO2 100, got %v", records[0].ProcessCO2)
	}
	// 调用方传入的切片不被修改
	if math.Abs(outs[0].ProcessCO2-52.5) > 1e-9 {
		t.Fatalf("input slice mutated: %v", outs[0].ProcessCO2)
	}
}
