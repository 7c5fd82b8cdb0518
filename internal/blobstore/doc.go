// Package blobstore реализует локальное хранилище блобов поверх файловой системы.
// Каждый блоб лежит отдельным файлом в корневом каталоге, имя файла — каноническая
// строка UUID. Никаких метаданных рядом не хранится.
//
// Запись идёт через временный файл .tmp-* в том же каталоге и атомарный rename,
// поэтому читатель видит либо старое, либо новое содержимое целиком. Временные
// файлы, брошенные оборванными записями, подчищает janitor (см. StartJanitor).
package blobstore
