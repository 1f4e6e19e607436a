/*Package splitread extracts split-read evidence of structural variation
  from paired-end alignments and suppresses redundant read pairs.

  The input is a SAM or BAM stream grouped by read name, in which every
  mapped record carries a hit index (HI) and left and right flank
  mappability scores (L0, R0). All records of one read name form a read
  group, split into mate 1 and mate 2 hits.

  Per mate, hits are first filtered on excess mappability, the number
  of aligned bases beyond the larger flank score, and then on the
  number of aligned bases. The survivors are scored with their unique
  base ratio: the fraction of their aligned bases, in the frame of the
  read as sequenced, that no other surviving hit of the same mate
  covers. Hits below the minimum ratio are dropped.

  Mate 2 hits within the hit window of a mate 1 hit on the same
  reference are dropped, since they usually report the same breakpoint
  as mate 1.

  Duplicate detection: the (reference, position) of every remaining hit,
  mate 1 first and each mate in hit index order, forms the key of the
  read group. The first read group with a given key is written to the
  hit table; later ones only count as duplicates. Keys are kept for the
  whole run, so memory grows with the number of distinct keys.

  Output is a tab separated table with the columns

    read_id read_index hit_index chrom pos reverse read_len hit_offset match_len umatch excess

  followed by a line with the number of duplicate and kept read groups.
*/
package splitread
