// Copyright 2025 LicitIA
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package secop fetches public procurement notices from the Colombian SECOP
// open-data portal through its Socrata API.
//
// The client queries the dataset with server-side $where filters, pages
// through results with $limit/$offset, and maps rows into core.Tender
// records. Row mapping is deliberately forgiving: malformed amounts and
// dates become absent optional fields, and rows missing the essential
// process id or entity name are skipped with a log line. A single bad row
// never fails a fetch.
package secop
