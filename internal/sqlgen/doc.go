// Package sqlgen renders extracted records as PostgreSQL upsert statements.
//
// Output layout:
//
//	-- Inserting N beneficiaries
//	-- Generated: YYYY-MM-DD
//
//	INSERT INTO ... ON CONFLICT (id) DO UPDATE SET ...;   (one per record)
//
//	-- Verify count
//	SELECT COUNT(*) as total_<table> FROM <table>;
//
// Apart from the date line the output is a pure function of the records,
// so rerunning over the same input yields the same bytes.
package sqlgen
